// Package diagnostics enriches failures that reach the process boundary with
// operator-facing remediation advice and a reference link. Enrichment happens
// exactly once, where main calls into the application; nothing inside the
// driver rethrows or decorates errors beyond plain wrapping.
package diagnostics

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
)

// Remediation pairs a predicate with advice shown when the predicate claims
// a failure. Handlers are tried in order; the first match wins.
type Remediation struct {
	Match  func(err error) bool
	Advice string
}

// LinkBuilder produces a reference URL for a failure.
type LinkBuilder func(err error) string

// Enricher decorates failures at the process boundary.
type Enricher struct {
	remediations []Remediation
	link         LinkBuilder
}

// NewEnricher builds an Enricher. A nil link builder falls back to
// DefaultLink.
func NewEnricher(remediations []Remediation, link LinkBuilder) *Enricher {
	if link == nil {
		link = DefaultLink
	}
	return &Enricher{remediations: append([]Remediation(nil), remediations...), link: link}
}

// Wrap returns err decorated with the first matching remediation's advice
// (when any handler claims it) and a reference link. The original error is
// preserved as the wrapped cause and is never swallowed; a nil err stays nil.
func (e *Enricher) Wrap(err error) error {
	if err == nil {
		return nil
	}

	var b strings.Builder
	for _, r := range e.remediations {
		if r.Match != nil && r.Match(err) {
			b.WriteString(r.Advice)
			b.WriteString("\n")
			break
		}
	}
	b.WriteString(e.link(err))

	return fmt.Errorf("%s: %w", b.String(), err)
}

// DefaultLink builds a stable deep link for a failure by hashing its type
// and first message line, so identical failures land on the same anchor.
func DefaultLink(err error) string {
	line := err.Error()
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	h := fnv.New32a()
	fmt.Fprintf(h, "%T", err)
	h.Write([]byte(line))

	return fmt.Sprintf("https://github.com/vk/flowchain/wiki/common-errors#e%08x", h.Sum32())
}

// MatchIs adapts errors.Is into a Remediation predicate.
func MatchIs(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// MatchContains claims failures whose message contains the given substring.
func MatchContains(substr string) func(error) bool {
	return func(err error) bool { return strings.Contains(err.Error(), substr) }
}
