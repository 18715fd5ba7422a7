package diagnostics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel failure")

func TestWrap_NilStaysNil(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil, nil)
	assert.NoError(t, e.Wrap(nil))
}

func TestWrap_FirstMatchWins(t *testing.T) {
	t.Parallel()

	e := NewEnricher([]Remediation{
		{Match: MatchIs(errSentinel), Advice: "first advice"},
		{Match: MatchIs(errSentinel), Advice: "second advice"},
	}, nil)

	err := e.Wrap(errSentinel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first advice")
	assert.NotContains(t, err.Error(), "second advice")
}

func TestWrap_NoMatchStillLinks(t *testing.T) {
	t.Parallel()

	e := NewEnricher([]Remediation{
		{Match: MatchIs(errors.New("other")), Advice: "irrelevant"},
	}, nil)

	err := e.Wrap(errSentinel)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "irrelevant")
	assert.Contains(t, err.Error(), "wiki/common-errors#e")
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	e := NewEnricher([]Remediation{
		{Match: MatchIs(errSentinel), Advice: "do the thing"},
	}, nil)

	err := e.Wrap(errSentinel)
	require.Error(t, err)
	assert.ErrorIs(t, err, errSentinel, "the original failure must stay reachable as the cause")
	assert.Contains(t, err.Error(), errSentinel.Error(), "the original message is never swallowed")
}

func TestWrap_CustomLinkBuilder(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil, func(err error) string {
		return "https://runbooks.example.com/driver"
	})

	err := e.Wrap(errSentinel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runbooks.example.com")
}

func TestDefaultLink_StablePerFailure(t *testing.T) {
	t.Parallel()

	a := DefaultLink(errors.New("same message"))
	b := DefaultLink(errors.New("same message"))
	c := DefaultLink(errors.New("different message"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMatchContains(t *testing.T) {
	t.Parallel()

	match := MatchContains("no job registered")
	assert.True(t, match(errors.New(`no job registered under "X"`)))
	assert.False(t, match(errors.New("something else")))
}
