package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenericOptions(t *testing.T) {
	t.Parallel()

	t.Run("passthrough preserves order", func(t *testing.T) {
		cfg := NewConfig()
		rest, err := ParseGenericOptions([]string{"MyJob", "--local", "--x", "1"}, cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"MyJob", "--local", "--x", "1"}, rest)
		assert.Empty(t, cfg.Keys())
	})

	t.Run("separated -D", func(t *testing.T) {
		cfg := NewConfig()
		rest, err := ParseGenericOptions([]string{"-D", "a=b", "MyJob"}, cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"MyJob"}, rest)
		assert.Equal(t, "b", cfg.GetOrElse("a", ""))
	})

	t.Run("attached -D", func(t *testing.T) {
		cfg := NewConfig()
		rest, err := ParseGenericOptions([]string{"-Da=b", "-Dc=d=e"}, cfg)
		require.NoError(t, err)
		assert.Empty(t, rest)
		assert.Equal(t, "b", cfg.GetOrElse("a", ""))
		// Only the first '=' splits the pair.
		assert.Equal(t, "d=e", cfg.GetOrElse("c", ""))
	})

	t.Run("dangling -D", func(t *testing.T) {
		_, err := ParseGenericOptions([]string{"-D"}, NewConfig())
		require.Error(t, err)
	})

	t.Run("malformed -D", func(t *testing.T) {
		_, err := ParseGenericOptions([]string{"-D", "novalue"}, NewConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key=value")
	})

	t.Run("dangling -conf", func(t *testing.T) {
		_, err := ParseGenericOptions([]string{"MyJob", "-conf"}, NewConfig())
		require.Error(t, err)
	})

	t.Run("missing conf file", func(t *testing.T) {
		_, err := ParseGenericOptions([]string{"-conf", "/nonexistent/engine.hcl"}, NewConfig())
		require.Error(t, err)
	})
}
