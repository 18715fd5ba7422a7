package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"integer", "42", "42"},
		{"integer with leading zeros", "042", "42"},
		{"negative integer", "-7", "-7"},
		{"float", "3.14", "3.14"},
		{"scientific notation", "1e10", "1e+10"},
		{"plain string", "abc", `"abc"`},
		{"empty string", "", `""`},
		{"mixed", "12abc", `"12abc"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScalarJSON(tt.in))
		})
	}
}

func TestScalarJSON_QuotesNotEscaped(t *testing.T) {
	t.Parallel()

	// Embedded quotes pass through unescaped; this matches the historical
	// format even though the output is not strictly valid JSON.
	assert.Equal(t, `"say "hi""`, ScalarJSON(`say "hi"`))
}

func TestMarshalFlat(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "{}", MarshalFlat(nil))
	})

	t.Run("sorted flat object", func(t *testing.T) {
		doc := MarshalFlat(map[string]string{
			"z.count": "3",
			"a.count": "1",
			"label":   "ok",
		})
		assert.Equal(t, `{"a.count":1,"label":"ok","z.count":3}`, doc)
	})
}

func TestFromCounters(t *testing.T) {
	t.Parallel()

	got := FromCounters(map[string]int64{"g.c": 12})
	assert.Equal(t, map[string]string{"g.c": "12"}, got)
}
