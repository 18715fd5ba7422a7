// Package stats serializes run statistics into the flat JSON document format
// written next to a job's artifacts.
package stats

import (
	"sort"
	"strconv"
	"strings"
)

// ScalarJSON renders one statistics value from its textual form. Values that
// parse as integers or floating-point numbers are emitted unquoted in their
// canonical form; everything else is wrapped in double quotes.
//
// Embedded quote characters are intentionally left unescaped to stay
// byte-compatible with the format's historical consumers. See DESIGN.md.
func ScalarJSON(text string) string {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return `"` + text + `"`
}

// MarshalFlat assembles the full statistics document: a single flat JSON
// object whose keys are counter names and whose values follow the ScalarJSON
// coercion. Keys are emitted in sorted order. No nesting, no arrays.
func MarshalFlat(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(":")
		b.WriteString(ScalarJSON(values[k]))
	}
	b.WriteString("}")
	return b.String()
}

// FromCounters converts a counter map into the textual form MarshalFlat
// consumes.
func FromCounters(counters map[string]int64) map[string]string {
	out := make(map[string]string, len(counters))
	for k, v := range counters {
		out[k] = strconv.FormatInt(v, 10)
	}
	return out
}
