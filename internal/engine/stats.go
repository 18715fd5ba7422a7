package engine

// Stats is the capability common to every run outcome the engine produces:
// a success verdict and the custom counters accumulated during the run.
// Statistics objects are read-only once returned.
type Stats interface {
	Success() bool
	Counters() map[string]int64
}

// FlowStats describes the outcome of one flow run.
type FlowStats struct {
	name     string
	success  bool
	counters map[string]int64
}

// NewFlowStats builds an immutable FlowStats. The counters map is copied.
func NewFlowStats(name string, success bool, counters map[string]int64) *FlowStats {
	return &FlowStats{name: name, success: success, counters: copyCounters(counters)}
}

// Name returns the name of the flow that produced these statistics.
func (s *FlowStats) Name() string { return s.name }

// Success reports whether the flow completed without failures.
func (s *FlowStats) Success() bool { return s.success }

// Counters returns a copy of the custom counters, keyed "group.name".
func (s *FlowStats) Counters() map[string]int64 { return copyCounters(s.counters) }

// CascadeStats aggregates the outcomes of every flow in a cascade.
type CascadeStats struct {
	name  string
	flows []*FlowStats
}

// NewCascadeStats builds a CascadeStats over the given per-flow results.
func NewCascadeStats(name string, flows []*FlowStats) *CascadeStats {
	return &CascadeStats{name: name, flows: append([]*FlowStats(nil), flows...)}
}

// Name returns the name of the cascade that produced these statistics.
func (s *CascadeStats) Name() string { return s.name }

// Success reports whether every member flow completed without failures.
func (s *CascadeStats) Success() bool {
	for _, f := range s.flows {
		if !f.Success() {
			return false
		}
	}
	return true
}

// Counters returns the member flows' counters summed per key.
func (s *CascadeStats) Counters() map[string]int64 {
	total := make(map[string]int64)
	for _, f := range s.flows {
		for k, v := range f.counters {
			total[k] += v
		}
	}
	return total
}

// FlowStats returns the per-flow results in run order.
func (s *CascadeStats) FlowStats() []*FlowStats {
	return append([]*FlowStats(nil), s.flows...)
}

func copyCounters(m map[string]int64) map[string]int64 {
	cp := make(map[string]int64, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
