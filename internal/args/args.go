// Package args implements the immutable argument bag handed to jobs.
//
// An Args value maps argument names to ordered lists of string values.
// Positional tokens (everything before the first --key token) live under the
// empty-string key. Args values are never mutated in place; every
// transformation returns a new value, so a job can safely hand its Args to
// the job it chains to.
package args

// Args is an immutable name -> values mapping.
type Args struct {
	m map[string][]string
}

// Positional is the reserved key under which positional tokens are stored.
const Positional = ""

// New builds an Args from an existing mapping. The mapping is copied.
func New(m map[string][]string) Args {
	cp := make(map[string][]string, len(m))
	for k, v := range m {
		cp[k] = append([]string(nil), v...)
	}
	return Args{m: cp}
}

// Parse builds an Args from a raw token stream.
//
// Tokens of the form "--key" open a named group; subsequent plain tokens are
// appended to that group's values. Plain tokens seen before any named group
// are positional. Repeated "--key" groups accumulate values rather than
// replacing earlier ones. No validation is performed here; malformed tokens
// are carried through for downstream components to reject.
func Parse(tokens []string) Args {
	m := make(map[string][]string)
	key := Positional
	m[key] = nil
	for _, tok := range tokens {
		if len(tok) > 2 && tok[:2] == "--" {
			key = tok[2:]
			if _, ok := m[key]; !ok {
				m[key] = nil
			}
			continue
		}
		m[key] = append(m[key], tok)
	}
	return Args{m: m}
}

// Has reports whether the named argument was given at all.
func (a Args) Has(name string) bool {
	_, ok := a.m[name]
	return ok
}

// Boolean reports whether the named flag is set. A flag is set when its key
// was present on the command line, with or without values.
func (a Args) Boolean(name string) bool {
	return a.Has(name)
}

// List returns a copy of all values given for name, in order. A missing name
// yields an empty slice.
func (a Args) List(name string) []string {
	return append([]string(nil), a.m[name]...)
}

// Optional returns the first value given for name. The boolean is false when
// the name is absent or was given without values.
func (a Args) Optional(name string) (string, bool) {
	vs := a.m[name]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// GetOrElse returns the first value given for name, or def when the name is
// absent or valueless.
func (a Args) GetOrElse(name, def string) string {
	if v, ok := a.Optional(name); ok {
		return v
	}
	return def
}

// PositionalValues returns a copy of the positional token list.
func (a Args) PositionalValues() []string {
	return a.List(Positional)
}

// With returns a new Args in which name is bound to exactly the given values,
// replacing any previous binding. The receiver is unchanged.
func (a Args) With(name string, values []string) Args {
	cp := make(map[string][]string, len(a.m)+1)
	for k, v := range a.m {
		cp[k] = v
	}
	cp[name] = append([]string(nil), values...)
	return Args{m: cp}
}
