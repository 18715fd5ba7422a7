package engine

import "sort"

// Counters accumulates named numeric metrics during a run. It is not
// synchronized: the driver is single-threaded and each run owns its own
// accumulator.
type Counters struct {
	values map[string]int64
}

// NewCounters returns an empty accumulator.
func NewCounters() *Counters {
	return &Counters{values: make(map[string]int64)}
}

// Inc adds delta to the counter identified by group and name. An empty group
// yields a bare name key; otherwise the key is "group.name".
func (c *Counters) Inc(group, name string, delta int64) {
	c.values[CounterKey(group, name)] += delta
}

// Snapshot returns a copy of the current counter values.
func (c *Counters) Snapshot() map[string]int64 {
	return copyCounters(c.values)
}

// CounterKey builds the flat key under which a grouped counter is reported.
func CounterKey(group, name string) string {
	if group == "" {
		return name
	}
	return group + "." + name
}

// CounterProvider exposes the custom counters of the current run. Iteration
// order over the returned map is unspecified.
type CounterProvider interface {
	Counters() map[string]int64
}

// runtimeProvider is the process-wide provider slot for the run in progress.
// It is deliberately not synchronized; the driver executes chain nodes
// strictly sequentially and rebinds the slot for every node so counters never
// leak from one job into the next.
var runtimeProvider CounterProvider

// BindRuntime binds the counter provider for the current run, replacing any
// previous binding.
func BindRuntime(p CounterProvider) {
	runtimeProvider = p
}

// UnbindRuntime clears the provider slot after a run has been reported.
func UnbindRuntime() {
	runtimeProvider = nil
}

// RuntimeCounters returns the current run's custom counters, or nil when no
// run is bound.
func RuntimeCounters() map[string]int64 {
	if runtimeProvider == nil {
		return nil
	}
	return runtimeProvider.Counters()
}

// SortedCounterKeys returns the keys of a counter map in sorted order, for
// callers that need deterministic output.
func SortedCounterKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
