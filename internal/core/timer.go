package core

import "time"

// FixedStep meters simulation ticks to a target ticks-per-second rate by
// banking elapsed wall-clock time. A freshly built controller fires on
// its first poll so the world never starts frozen.
type FixedStep struct {
	interval time.Duration
	banked   time.Duration
	prev     time.Time
}

// NewFixedStep returns a controller pacing ticks at the given rate.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.banked = fs.interval
	return fs
}

// SetTPS retargets the tick rate. Rates below one fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.interval = time.Second / time.Duration(tps)
}

// ShouldStep reports whether enough wall time has banked for one tick,
// consuming one interval's worth when it has.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.prev.IsZero() {
		f.prev = now
	}
	f.banked += now.Sub(f.prev)
	f.prev = now
	if f.banked < f.interval {
		return false
	}
	f.banked -= f.interval
	return true
}
