// Package pipeline is a built-in cascade job: an extract flow tokenizes the
// input into an intermediate file, and an aggregate flow tallies the tokens
// into the output. The intermediate file is released through the job's Clear
// hook once the run attempt is over.
package pipeline

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
const Name = "Pipeline"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the job factory with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, New)
}

// Job runs the extract and aggregate flows as one cascade.
type Job struct {
	job.CascadeBase
	input        string
	output       string
	intermediate string
}

// New is the job factory; it reads --input and --output from the arguments.
func New(a args.Args) (job.Job, error) {
	output := a.GetOrElse("output", "")
	return &Job{
		CascadeBase:  job.NewCascadeBase(Name, a),
		input:        a.GetOrElse("input", ""),
		output:       output,
		intermediate: output + ".tokens",
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

// Cascade bundles the extract and aggregate flows in run order.
func (j *Job) Cascade(ctx context.Context) (engine.Cascade, error) {
	extract, err := j.extractFlow()
	if err != nil {
		return nil, err
	}
	aggregate, err := j.aggregateFlow()
	if err != nil {
		return nil, err
	}
	return engine.NewCascade(Name, extract, aggregate), nil
}

// Clear removes the intermediate token file. It runs exactly once per chain
// node, whether or not the cascade succeeded.
func (j *Job) Clear(ctx context.Context) error {
	if err := os.Remove(j.intermediate); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing intermediate file: %w", err)
	}
	return nil
}

func (j *Job) extractFlow() (engine.Flow, error) {
	var tokens []string

	tokenize := func(ctx context.Context, c *engine.Counters) error {
		data, err := os.ReadFile(j.input)
		if err != nil {
			return fmt.Errorf("reading %s: %w", j.input, err)
		}
		for _, t := range strings.Fields(string(data)) {
			tokens = append(tokens, strings.ToLower(strings.Trim(t, `.,;:!?"'()`)))
		}
		c.Inc("extract", "tokens", int64(len(tokens)))
		return nil
	}

	spill := func(ctx context.Context, c *engine.Counters) error {
		if err := os.WriteFile(j.intermediate, []byte(strings.Join(tokens, "\n")), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", j.intermediate, err)
		}
		return nil
	}

	return engine.NewFlowBuilder("Extract").
		Step("tokenize", tokenize).
		Step("spill", spill, "tokenize").
		Build()
}

func (j *Job) aggregateFlow() (engine.Flow, error) {
	counts := make(map[string]int64)

	tally := func(ctx context.Context, c *engine.Counters) error {
		data, err := os.ReadFile(j.intermediate)
		if err != nil {
			return fmt.Errorf("reading %s: %w", j.intermediate, err)
		}
		for _, t := range strings.Split(string(data), "\n") {
			if t == "" {
				continue
			}
			counts[t]++
		}
		c.Inc("aggregate", "distinct", int64(len(counts)))
		return nil
	}

	write := func(ctx context.Context, c *engine.Counters) error {
		tokens := make([]string, 0, len(counts))
		for t := range counts {
			tokens = append(tokens, t)
		}
		sort.Strings(tokens)

		var b strings.Builder
		for _, t := range tokens {
			fmt.Fprintf(&b, "%s\t%d\n", t, counts[t])
		}
		if err := os.WriteFile(j.output, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", j.output, err)
		}
		return nil
	}

	return engine.NewFlowBuilder("Aggregate").
		Step("tally", tally).
		Step("write", write, "tally").
		Build()
}
