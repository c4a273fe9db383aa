package core

import "time"

// FixedStep paces simulation steps at a steady rate independent of the frame
// rate of whoever polls it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting sps steps per second. The
// first poll always reports a due step.
func NewFixedStep(sps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(sps)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 10 steps per second.
func (f *FixedStep) SetRate(sps int) {
	if sps <= 0 {
		sps = 10
	}
	f.step = time.Second / time.Duration(sps)
}

// Interval returns the time between two steps.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset discards accumulated time so the next poll starts a fresh interval.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one step.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
