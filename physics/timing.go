package physics

import "time"

// StepTiming describes one Simulate call.
type StepTiming struct {
	Step      uint64
	DT        float64
	Integrate time.Duration
	Detect    time.Duration
	Solve     time.Duration
	Detection DetectionStats
	Corrected int
}

// Total returns the time spent in all phases.
func (t StepTiming) Total() time.Duration {
	return t.Integrate + t.Detect + t.Solve
}

// StepSink receives timing for every simulated step.
type StepSink interface {
	ObserveStep(StepTiming)
}

// StepSinkFunc adapts a function to StepSink.
type StepSinkFunc func(StepTiming)

func (f StepSinkFunc) ObserveStep(t StepTiming) {
	f(t)
}

// StepStats aggregates step timings.
type StepStats struct {
	Steps    uint64
	Total    time.Duration
	Slowest  time.Duration
	Contacts int
	Last     StepTiming
}

func (s *StepStats) ObserveStep(t StepTiming) {
	s.Steps++
	total := t.Total()
	s.Total += total
	if total > s.Slowest {
		s.Slowest = total
	}
	s.Contacts += t.Detection.Contacts
	s.Last = t
}

// Mean returns the average step duration.
func (s *StepStats) Mean() time.Duration {
	if s.Steps == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Steps)
}
