// Package mode resolves where a chain executes and carries the engine's
// native configuration alongside that decision.
package mode

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/flowchain/internal/args"
	"github.com/vk/flowchain/internal/engine"
)

// Kind identifies the execution target of a run.
type Kind int

const (
	// Local runs flows in process against the local engine.
	Local Kind = iota
	// Hdfs submits flows to the cluster engine.
	Hdfs
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Hdfs:
		return "hdfs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mode is constructed once per process invocation and shared read-only.
type Mode struct {
	Kind   Kind
	Config *engine.Config
}

// ErrUnspecified is returned when neither --local nor --hdfs was given.
var ErrUnspecified = errors.New("mode must be one of --local or --hdfs")

// Resolve strips the engine's generic options from rawArgs (populating cfg as
// a side effect), builds the job Args from the remaining tokens, and selects
// the execution mode from the --local / --hdfs flags. The mode flags stay
// visible in the returned Args.
func Resolve(rawArgs []string, cfg *engine.Config) (Mode, args.Args, error) {
	rest, err := engine.ParseGenericOptions(rawArgs, cfg)
	if err != nil {
		return Mode{}, args.Args{}, fmt.Errorf("parsing engine options: %w", err)
	}

	a := args.Parse(rest)

	var kind Kind
	switch {
	case a.Boolean("local") && a.Boolean("hdfs"):
		return Mode{}, args.Args{}, errors.New("both --local and --hdfs given; pick one")
	case a.Boolean("local"):
		kind = Local
	case a.Boolean("hdfs"):
		kind = Hdfs
	default:
		return Mode{}, args.Args{}, ErrUnspecified
	}

	return Mode{Kind: kind, Config: cfg}, a, nil
}

// modeKey is an unexported context key, following the ctxlog pattern.
type modeKey struct{}

// WithContext returns a new context carrying the resolved mode so jobs deep
// in a chain can consult it without threading it explicitly.
func WithContext(ctx context.Context, m Mode) context.Context {
	return context.WithValue(ctx, modeKey{}, m)
}

// FromContext extracts the Mode from a context.
func FromContext(ctx context.Context) (Mode, bool) {
	m, ok := ctx.Value(modeKey{}).(Mode)
	return m, ok
}
