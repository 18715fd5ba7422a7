// Package driver implements the chain-execution loop: it resolves the job to
// run, then walks the chain one node at a time, either dumping execution
// graphs or validating and running each job, reporting statistics and
// counters, releasing resources, and aborting the whole chain on the first
// failure.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/flowchain/internal/args"
	"github.com/vk/flowchain/internal/ctxlog"
	"github.com/vk/flowchain/internal/engine"
	"github.com/vk/flowchain/internal/job"
	"github.com/vk/flowchain/internal/ledger"
	"github.com/vk/flowchain/internal/registry"
	"github.com/vk/flowchain/internal/stats"
)

// Args flags recognized by the driver. The names are part of the external
// contract and must not change.
const (
	// FlagGraph switches a job to graph-dump mode: write DOT artifacts
	// instead of executing.
	FlagGraph = "tool.graph"
	// FlagFlowStats requests the statistics JSON file; an optional value
	// names the output file.
	FlagFlowStats = "scalding.flowstats"
	// FlagNoCounters suppresses counter printing.
	FlagNoCounters = "scalding.nocounters"
)

// ErrConstructorRegistered is returned when a second job constructor is
// registered on the same driver. The slot is write-once.
var ErrConstructorRegistered = errors.New("job constructor already registered")

// ErrNoJob is returned when no constructor was preregistered and the
// arguments carry no job name.
var ErrNoJob = errors.New("no job given; usage: flowchain <jobName> --local|--hdfs [--key value ...]")

// Driver executes job chains. It is single-threaded: each job's run blocks
// until the engine reports completion, and node N+1 never starts before node
// N has been cleared.
type Driver struct {
	out         io.Writer
	registry    *registry.Registry
	constructor job.Factory
	ledger      *ledger.Ledger
	workDir     string
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithOut directs counter output to w instead of os.Stdout.
func WithOut(w io.Writer) Option {
	return func(d *Driver) { d.out = w }
}

// WithConstructor bakes a preregistered job constructor into the driver,
// bypassing name-based resolution. The constructor slot is write-once.
func WithConstructor(f job.Factory) Option {
	return func(d *Driver) { d.constructor = f }
}

// WithLedger attaches a run-history ledger. Ledger failures are logged and
// never abort the chain.
func WithLedger(l *ledger.Ledger) Option {
	return func(d *Driver) { d.ledger = l }
}

// WithWorkDir sets the directory artifact files are written to. Defaults to
// the current directory.
func WithWorkDir(dir string) Option {
	return func(d *Driver) { d.workDir = dir }
}

// New builds a Driver resolving named jobs against reg.
func New(reg *registry.Registry, opts ...Option) *Driver {
	d := &Driver{
		out:      os.Stdout,
		registry: reg,
		workDir:  ".",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterConstructor installs the preregistered job constructor. A second
// registration — including one made through WithConstructor — is a
// configuration error.
func (d *Driver) RegisterConstructor(f job.Factory) error {
	if d.constructor != nil {
		return ErrConstructorRegistered
	}
	if f == nil {
		return errors.New("job constructor must not be nil")
	}
	d.constructor = f
	return nil
}

// ResolveJob produces the root job of a chain. With a preregistered
// constructor, the constructor decides; otherwise the first positional value
// names the job and is removed from the Args handed to its factory.
func (d *Driver) ResolveJob(a args.Args) (job.Job, error) {
	if d.constructor != nil {
		return d.constructor(a)
	}

	positional := a.PositionalValues()
	if len(positional) == 0 {
		return nil, ErrNoJob
	}

	name := positional[0]
	factory, ok := d.registry.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("no job registered under %q (known jobs: %v)", name, d.registry.Names())
	}

	return factory(a.With(args.Positional, positional[1:]))
}

// Execute walks the chain rooted at root. It is an explicit loop so stack
// usage stays constant for arbitrarily long chains. The chain aborts on the
// first failing node; Clear still runs on that node before the abort.
func (d *Driver) Execute(ctx context.Context, root job.Job) error {
	logger := ctxlog.FromContext(ctx)

	current, index := root, 0
	for current != nil {
		nodeLogger := logger.With("job", current.Name(), "chainIndex", index)
		nodeLogger.Debug("Starting chain node.")

		started := time.Now()
		counters, runErr := d.runNode(ctx, current, index)

		// Resources are released exactly once per node, before any abort
		// decision, so an early failure can never skip cleanup.
		if clearErr := current.Clear(ctx); clearErr != nil {
			nodeLogger.Warn("Resource release failed.", "error", clearErr)
		}

		d.record(ctx, ledger.Entry{
			JobName:    current.Name(),
			ChainIndex: index,
			Kind:       current.Kind().String(),
			GraphOnly:  current.Args().Boolean(FlagGraph),
			Success:    runErr == nil,
			Duration:   time.Since(started),
			Counters:   counters,
			StartedAt:  started,
		})

		if runErr != nil {
			if index == 0 {
				return fmt.Errorf("job %s failed at chain index 0: %w", root.Name(), runErr)
			}
			return fmt.Errorf("chain rooted at %s failed at index %d in %s: %w",
				root.Name(), index, current.Name(), runErr)
		}

		nodeLogger.Debug("Chain node finished.")
		current = current.Next()
		index++
	}

	logger.Info("Chain completed successfully.", "jobs", index)
	return nil
}

// runNode executes one chain node and returns the counters it collected.
func (d *Driver) runNode(ctx context.Context, j job.Job, index int) (map[string]int64, error) {
	a := j.Args()

	if a.Boolean(FlagGraph) {
		return nil, d.writeGraphs(ctx, j, index)
	}

	if err := j.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating job: %w", err)
	}

	var result engine.Stats
	switch j.Kind() {
	case job.KindCascade:
		cascade, err := j.Cascade(ctx)
		if err != nil {
			return nil, fmt.Errorf("building cascade: %w", err)
		}
		result, err = cascade.Complete(ctx)
		if err != nil {
			return nil, err
		}
	default:
		flow, err := j.Flow(ctx)
		if err != nil {
			return nil, fmt.Errorf("building flow: %w", err)
		}
		flowStats, err := flow.Complete(ctx)
		if err != nil {
			return nil, err
		}
		if err := d.writeFlowStats(ctx, j, index, flowStats); err != nil {
			return flowStats.Counters(), err
		}
		result = flowStats
	}

	// The provider slot is rebound for every node; counters from a previous
	// job are unreachable by the time this one reports.
	engine.BindRuntime(result)
	defer engine.UnbindRuntime()

	if !a.Boolean(FlagNoCounters) {
		d.printCounters()
	}

	if !result.Success() {
		return result.Counters(), errors.New("engine reported an unsuccessful run")
	}
	return result.Counters(), nil
}

// writeGraphs renders the node's execution graph into two DOT files:
// <jobName><index>.dot and <jobName><index>_steps.dot. Nothing runs and no
// statistics are produced; this branch is an unconditional success once the
// files are written.
func (d *Driver) writeGraphs(ctx context.Context, j job.Job, index int) error {
	logger := ctxlog.FromContext(ctx)

	var graphed engine.Graphed
	var err error
	switch j.Kind() {
	case job.KindCascade:
		graphed, err = j.Cascade(ctx)
	default:
		graphed, err = j.Flow(ctx)
	}
	if err != nil {
		return fmt.Errorf("building execution graph: %w", err)
	}

	base := fmt.Sprintf("%s%d", j.Name(), index)
	flowPath := filepath.Join(d.workDir, base+".dot")
	stepsPath := filepath.Join(d.workDir, base+"_steps.dot")

	if err := writeFile(flowPath, graphed.WriteDOT); err != nil {
		return err
	}
	if err := writeFile(stepsPath, graphed.WriteStepsDOT); err != nil {
		return err
	}

	logger.Info("Wrote execution graph.", "flow", flowPath, "steps", stepsPath)
	return nil
}

// writeFlowStats serializes the statistics map when the flowstats flag is
// set. A bare flag writes <jobName><index>._flowstats.json; a flag value
// names the file instead.
func (d *Driver) writeFlowStats(ctx context.Context, j job.Job, index int, fs *engine.FlowStats) error {
	a := j.Args()
	if !a.Has(FlagFlowStats) {
		return nil
	}

	name := fmt.Sprintf("%s%d._flowstats.json", j.Name(), index)
	if v, ok := a.Optional(FlagFlowStats); ok && v != "" && v != "true" {
		name = v
	}
	path := filepath.Join(d.workDir, name)

	doc := stats.MarshalFlat(stats.FromCounters(fs.Counters()))
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing flow statistics: %w", err)
	}

	ctxlog.FromContext(ctx).Info("Wrote flow statistics.", "file", path)
	return nil
}

// printCounters reports the current run's custom counters through the
// process-wide provider. Order is the provider's iteration order.
func (d *Driver) printCounters() {
	counters := engine.RuntimeCounters()
	if len(counters) == 0 {
		return
	}
	fmt.Fprintln(d.out, "Custom counters:")
	for name, value := range counters {
		fmt.Fprintf(d.out, "\t%s\t%d\n", name, value)
	}
}

// record appends a ledger entry when a ledger is attached. Failures are
// logged and swallowed: history is an observer, never a participant.
func (d *Driver) record(ctx context.Context, e ledger.Entry) {
	if d.ledger == nil {
		return
	}
	if err := d.ledger.Record(ctx, e); err != nil {
		ctxlog.FromContext(ctx).Warn("Ledger write failed.", "job", e.JobName, "error", err)
	}
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
