// Package stopwatch accumulates elapsed wall-clock time across any number
// of start/stop intervals.
package stopwatch

import "time"

// Stopwatch sums the durations of its start/stop intervals. The zero value
// is a stopped Stopwatch reading the system clock.
type Stopwatch struct {
	now     func() time.Time
	running bool
	start   time.Time
	elapsed time.Duration
}

// New returns a stopped Stopwatch reading the system clock.
func New() *Stopwatch {
	return NewWithClock(time.Now)
}

// NewWithClock returns a stopped Stopwatch reading the given clock.
func NewWithClock(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now}
}

func (s *Stopwatch) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}

	return s.now()
}

// Start opens a new interval. It does nothing if one is already open.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}

	s.start = s.clock()
	s.running = true
}

// Stop closes the open interval and adds it to the total. It does nothing
// if the stopwatch is stopped.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}

	s.elapsed += s.clock().Sub(s.start)
	s.running = false
}

// Reset stops the stopwatch and zeroes the total.
func (s *Stopwatch) Reset() {
	s.Stop()
	s.elapsed = 0
}

// Running reports whether an interval is open.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the total of all closed intervals plus, if running, the
// time since the open interval started. It does not modify the stopwatch.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.elapsed + s.clock().Sub(s.start)
	}

	return s.elapsed
}

// ElapsedNanos returns Elapsed in nanoseconds.
func (s *Stopwatch) ElapsedNanos() int64 {
	return int64(s.Elapsed())
}

// ElapsedMillis returns Elapsed in whole milliseconds, truncated.
func (s *Stopwatch) ElapsedMillis() int64 {
	return s.ElapsedNanos() / 1_000_000
}

// ElapsedSeconds returns Elapsed in fractional seconds.
func (s *Stopwatch) ElapsedSeconds() float64 {
	return float64(s.ElapsedNanos()) / 1e9
}
