package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/flowchain/internal/ctxlog"
)

// NewCascade bundles the given flows into a cascade that runs them in order
// and reports on them as one unit.
func NewCascade(name string, flows ...Flow) Cascade {
	return &localCascade{name: name, flows: append([]Flow(nil), flows...)}
}

type localCascade struct {
	name  string
	flows []Flow
}

func (c *localCascade) Name() string { return c.name }

func (c *localCascade) Flows() []Flow {
	return append([]Flow(nil), c.flows...)
}

// Complete runs the member flows sequentially. The first unsuccessful flow
// ends the cascade; flows already run keep their statistics in the result.
func (c *localCascade) Complete(ctx context.Context) (*CascadeStats, error) {
	logger := ctxlog.FromContext(ctx).With("cascade", c.name)

	results := make([]*FlowStats, 0, len(c.flows))
	for _, f := range c.flows {
		logger.Debug("Running cascade member flow.", "flow", f.Name())
		fs, err := f.Complete(ctx)
		if err != nil {
			return nil, fmt.Errorf("cascade %s: flow %s: %w", c.name, f.Name(), err)
		}
		results = append(results, fs)
		if !fs.Success() {
			logger.Error("Cascade member flow was unsuccessful.", "flow", f.Name())
			break
		}
	}

	return NewCascadeStats(c.name, results), nil
}

// WriteDOT renders the cascade at flow granularity: one node per member flow,
// connected in run order.
func (c *localCascade) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n", c.name); err != nil {
		return err
	}
	for _, f := range c.flows {
		if _, err := fmt.Fprintf(w, "  %q;\n", f.Name()); err != nil {
			return err
		}
	}
	for i := 1; i < len(c.flows); i++ {
		if _, err := fmt.Fprintf(w, "  %q -> %q;\n", c.flows[i-1].Name(), c.flows[i].Name()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// WriteStepsDOT renders the step-level breakdown. Flows built by this engine
// contribute their full step graphs as clusters; foreign Flow implementations
// degrade to a single node since their internals are opaque here.
func (c *localCascade) WriteStepsDOT(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n", c.name+"_steps"); err != nil {
		return err
	}
	for i, f := range c.flows {
		if lf, ok := f.(*localFlow); ok {
			if err := lf.graph.WriteCluster(w, i, lf.name, fmt.Sprintf("%s/", lf.name)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "  %q;\n", f.Name()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

var _ CounterProvider = (*FlowStats)(nil)
var _ CounterProvider = (*CascadeStats)(nil)
