package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowchain/internal/args"
	"github.com/vk/flowchain/internal/engine"
	"github.com/vk/flowchain/internal/job"
)

type nopJob struct {
	job.Base
}

func newNopJob(a args.Args) (job.Job, error) {
	return &nopJob{Base: job.NewBase("Nop", a)}, nil
}

func (j *nopJob) Flow(ctx context.Context) (engine.Flow, error) {
	return nil, nil
}

func TestRegisterAndResolve(t *testing.T) {
	r := New()
	r.Register("Nop", newNopJob)

	f, ok := r.Resolve("Nop")
	require.True(t, ok)
	require.NotNil(t, f)

	_, ok = r.Resolve("Missing")
	assert.False(t, ok)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := New()
	r.Register("Nop", newNopJob)

	assert.Panics(t, func() {
		r.Register("Nop", newNopJob)
	})
}

func TestRegister_NilFactoryPanics(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		r.Register("Nil", nil)
	})
}

func TestNames_Sorted(t *testing.T) {
	r := New()
	r.Register("Zeta", newNopJob)
	r.Register("Alpha", newNopJob)

	assert.Equal(t, []string{"Alpha", "Zeta"}, r.Names())
}
