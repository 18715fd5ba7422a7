// Package wordcount is a built-in single-flow job: it reads a text file,
// counts word occurrences, and writes the tallies to an output file.
package wordcount

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vk/flowchain/internal/args"
	"github.com/vk/flowchain/internal/engine"
	"github.com/vk/flowchain/internal/job"
	"github.com/vk/flowchain/internal/registry"
)

// Name is the job's registered name.
const Name = "WordCount"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the job factory with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, New)
}

// Job counts word occurrences in a text file.
type Job struct {
	job.Base
	input  string
	output string
}

// New is the job factory; it reads --input and --output from the arguments.
func New(a args.Args) (job.Job, error) {
	return &Job{
		Base:   job.NewBase(Name, a),
		input:  a.GetOrElse("input", ""),
		output: a.GetOrElse("output", ""),
	}, nil
}

// Validate checks that both paths were given and the input exists.
func (j *Job) Validate(ctx context.Context) error {
	if j.input == "" {
		return fmt.Errorf("%s requires --input", Name)
	}
	if j.output == "" {
		return fmt.Errorf("%s requires --output", Name)
	}
	if _, err := os.Stat(j.input); err != nil {
		return fmt.Errorf("%s input: %w", Name, err)
	}
	return nil
}

// Flow builds the three-step pipeline: read, count, write. The steps share
// state through the enclosing closure; the flow runs them in dependency order.
func (j *Job) Flow(ctx context.Context) (engine.Flow, error) {
	var text string
	counts := make(map[string]int64)

	read := func(ctx context.Context, c *engine.Counters) error {
		data, err := os.ReadFile(j.input)
		if err != nil {
			return fmt.Errorf("reading %s: %w", j.input, err)
		}
		text = string(data)
		c.Inc("wordcount", "lines", int64(strings.Count(text, "\n")))
		return nil
	}

	count := func(ctx context.Context, c *engine.Counters) error {
		for _, w := range strings.Fields(text) {
			counts[strings.ToLower(w)]++
			c.Inc("wordcount", "words", 1)
		}
		c.Inc("wordcount", "unique", int64(len(counts)))
		return nil
	}

	write := func(ctx context.Context, c *engine.Counters) error {
		words := make([]string, 0, len(counts))
		for w := range counts {
			words = append(words, w)
		}
		sort.Strings(words)

		var b strings.Builder
		for _, w := range words {
			fmt.Fprintf(&b, "%s\t%d\n", w, counts[w])
		}
		if err := os.WriteFile(j.output, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", j.output, err)
		}
		return nil
	}

	return engine.NewFlowBuilder(Name).
		Step("read", read).
		Step("count", count, "read").
		Step("write", write, "count").
		Build()
}
