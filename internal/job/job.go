// Package job defines the unit of work the driver executes: a node in a
// singly linked chain that can validate itself, build its execution graph,
// run against the engine, and release its resources afterwards.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/flowchain/internal/args"
	"github.com/vk/flowchain/internal/engine"
)

// Kind tags how a job runs: as a single flow or as a multi-flow cascade.
// The driver dispatches on this tag rather than on the job's concrete type.
type Kind int

const (
	// KindFlow jobs run one dataflow graph and produce FlowStats.
	KindFlow Kind = iota
	// KindCascade jobs run a bundle of flows and produce CascadeStats.
	KindCascade
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindFlow:
		return "flow"
	case KindCascade:
		return "cascade"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrNotCascade is returned by Cascade on single-flow jobs.
var ErrNotCascade = errors.New("job is not a cascade job")

// ErrNotFlow is returned by Flow on cascade jobs.
var ErrNotFlow = errors.New("job is not a single-flow job")

// Job is one unit of work in a chain. The driver consumes each job exactly
// once: Validate, then Flow or Cascade depending on Kind, then Clear —
// regardless of the run outcome. Jobs form chains through Next; each job
// exclusively owns its downstream reference.
type Job interface {
	// Name is the job's registered name, used in artifact file names and
	// failure messages.
	Name() string
	// Args returns the arguments the job was constructed with.
	Args() args.Args
	// Kind selects the run strategy.
	Kind() Kind
	// Validate checks the job's preconditions before any run attempt.
	Validate(ctx context.Context) error
	// Flow builds the job's dataflow graph. Called on KindFlow jobs only.
	Flow(ctx context.Context) (engine.Flow, error)
	// Cascade builds the job's flow bundle. Called on KindCascade jobs only.
	Cascade(ctx context.Context) (engine.Cascade, error)
	// Clear releases any resources held by the job. Called exactly once per
	// chain node, after the run attempt, success or failure.
	Clear(ctx context.Context) error
	// Next returns the following job in the chain, or nil at the end.
	Next() Job
}

// Factory constructs a job from its arguments.
type Factory func(a args.Args) (Job, error)

// Base carries the chain bookkeeping shared by single-flow jobs. Embed it
// and implement Flow; override Validate and Clear as needed.
type Base struct {
	name string
	args args.Args
	next Job
}

// NewBase builds the embedded core of a job.
func NewBase(name string, a args.Args) Base {
	return Base{name: name, args: a}
}

// Name returns the job's registered name.
func (b *Base) Name() string { return b.name }

// Args returns the arguments the job was constructed with.
func (b *Base) Args() args.Args { return b.args }

// Kind tags the job as a single-flow job.
func (b *Base) Kind() Kind { return KindFlow }

// Validate is a no-op by default.
func (b *Base) Validate(ctx context.Context) error { return nil }

// Cascade fails: single-flow jobs have no flow bundle.
func (b *Base) Cascade(ctx context.Context) (engine.Cascade, error) {
	return nil, fmt.Errorf("%s: %w", b.name, ErrNotCascade)
}

// Clear is a no-op by default.
func (b *Base) Clear(ctx context.Context) error { return nil }

// Next returns the following job in the chain, or nil.
func (b *Base) Next() Job { return b.next }

// SetNext links the following job into the chain. A job sets this before the
// driver reaches it, typically in its factory.
func (b *Base) SetNext(j Job) { b.next = j }

// CascadeBase is the counterpart of Base for cascade jobs. Embed it and
// implement Cascade.
type CascadeBase struct {
	Base
}

// NewCascadeBase builds the embedded core of a cascade job.
func NewCascadeBase(name string, a args.Args) CascadeBase {
	return CascadeBase{Base: NewBase(name, a)}
}

// Kind tags the job as a cascade job.
func (b *CascadeBase) Kind() Kind { return KindCascade }

// Flow fails: cascade jobs run through their flow bundle.
func (b *CascadeBase) Flow(ctx context.Context) (engine.Flow, error) {
	return nil, fmt.Errorf("%s: %w", b.Name(), ErrNotFlow)
}
