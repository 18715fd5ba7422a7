package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/flowchain/internal/ctxlog"
	"github.com/vk/flowchain/internal/dag"
)

// StepFunc is the body of one step in a locally executed flow. A returned
// error marks the whole run unsuccessful.
type StepFunc func(ctx context.Context, counters *Counters) error

// FlowBuilder assembles a local flow step by step:
//
//	flow, err := engine.NewFlowBuilder("WordCount").
//	    Step("read", readFn).
//	    Step("count", countFn, "read").
//	    Step("write", writeFn, "count").
//	    Build()
type FlowBuilder struct {
	name  string
	graph *dag.Graph
	steps map[string]StepFunc
	err   error
}

// NewFlowBuilder starts a new flow definition with the given name.
func NewFlowBuilder(name string) *FlowBuilder {
	return &FlowBuilder{
		name:  name,
		graph: dag.New(),
		steps: make(map[string]StepFunc),
	}
}

// Step adds a named step that runs after all steps listed in `after`. The
// first error (duplicate name, unknown dependency) is latched and surfaced
// by Build.
func (b *FlowBuilder) Step(name string, fn StepFunc, after ...string) *FlowBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("flow %s: step name must not be empty", b.name)
		return b
	}
	if fn == nil {
		b.err = fmt.Errorf("flow %s: step %q has nil function", b.name, name)
		return b
	}
	if _, ok := b.steps[name]; ok {
		b.err = fmt.Errorf("flow %s: step %q declared twice", b.name, name)
		return b
	}

	b.graph.AddNode(name)
	b.steps[name] = fn
	for _, dep := range after {
		if err := b.graph.AddEdge(dep, name); err != nil {
			b.err = fmt.Errorf("flow %s: %w", b.name, err)
			return b
		}
	}
	return b
}

// Build finalizes the flow, verifying the step graph is acyclic.
func (b *FlowBuilder) Build() (Flow, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.graph.Len() == 0 {
		return nil, fmt.Errorf("flow %s has no steps", b.name)
	}
	if err := b.graph.DetectCycles(); err != nil {
		return nil, fmt.Errorf("flow %s: %w", b.name, err)
	}
	return &localFlow{name: b.name, graph: b.graph, steps: b.steps}, nil
}

// localFlow executes its steps sequentially in dependency order, in process.
type localFlow struct {
	name  string
	graph *dag.Graph
	steps map[string]StepFunc
}

func (f *localFlow) Name() string { return f.name }

// Complete runs every step in topological order. The first failing step ends
// the run; its error is recorded in the statistics as an unsuccessful
// outcome, while counters accumulated up to that point are preserved.
func (f *localFlow) Complete(ctx context.Context) (*FlowStats, error) {
	logger := ctxlog.FromContext(ctx).With("flow", f.name)

	order, err := f.graph.TopoOrder()
	if err != nil {
		return nil, fmt.Errorf("ordering steps of flow %s: %w", f.name, err)
	}

	counters := NewCounters()
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("flow %s interrupted before step %s: %w", f.name, id, err)
		}
		logger.Debug("Running flow step.", "step", id)
		if err := f.steps[id](ctx, counters); err != nil {
			logger.Error("Flow step failed.", "step", id, "error", err)
			return NewFlowStats(f.name, false, counters.Snapshot()), nil
		}
	}

	logger.Debug("Flow completed.", "steps", len(order))
	return NewFlowStats(f.name, true, counters.Snapshot()), nil
}

func (f *localFlow) WriteDOT(w io.Writer) error {
	return f.graph.WriteDOT(w, f.name)
}

func (f *localFlow) WriteStepsDOT(w io.Writer) error {
	return f.graph.WriteStepsDOT(w, f.name)
}
