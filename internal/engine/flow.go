package engine

import (
	"context"
	"io"
)

// Flow is a single executable dataflow graph. Complete blocks until the
// engine reports the run finished; a step failure is reported through the
// returned statistics, not through the error, which is reserved for
// engine-level faults such as context cancellation.
type Flow interface {
	Name() string
	Complete(ctx context.Context) (*FlowStats, error)
	WriteDOT(w io.Writer) error
	WriteStepsDOT(w io.Writer) error
}

// Cascade is a bundle of interdependent flows executed and reported on as
// one unit. Member flows run in declaration order.
type Cascade interface {
	Name() string
	Complete(ctx context.Context) (*CascadeStats, error)
	Flows() []Flow
	WriteDOT(w io.Writer) error
	WriteStepsDOT(w io.Writer) error
}

// Graphed is the rendering capability shared by Flow and Cascade; the driver
// uses it in graph-dump mode without caring which kind it holds.
type Graphed interface {
	WriteDOT(w io.Writer) error
	WriteStepsDOT(w io.Writer) error
}
