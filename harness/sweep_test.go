package harness

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/weiihann/primbench/stopwatch"
)

var (
	errDiskFull   = errors.New("disk full")
	errCloseFails = errors.New("close fails")
)

// memWriter keeps rows in memory and fails on demand.
type memWriter struct {
	row       []any
	rows      [][]any
	failAfter int // EndLine fails once this many rows are stored; 0 never fails
	closeErr  error
	closed    bool
}

func (m *memWriter) AddEntry(v any) { m.row = append(m.row, v) }

func (m *memWriter) AddEntries(vs ...any) { m.row = append(m.row, vs...) }

func (m *memWriter) EndLine() error {
	if m.failAfter > 0 && len(m.rows) >= m.failAfter {
		return errDiskFull
	}

	m.rows = append(m.rows, m.row)
	m.row = nil

	return nil
}

func (m *memWriter) Close() error {
	m.closed = true

	return m.closeErr
}

func memRunner(sweep Sweep, w *memWriter) *Runner {
	r := NewRunner("mem", sweep, 1, testLogger(), nil)
	r.create = func(string) (rowWriter, error) { return w, nil }

	return r
}

// tickingStopwatch returns stopwatches whose clock moves by tick on every
// reading, so each start/stop interval lasts exactly tick.
func tickingStopwatch(tick time.Duration) func() *stopwatch.Stopwatch {
	return func() *stopwatch.Stopwatch {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		return stopwatch.NewWithClock(func() time.Time {
			now = now.Add(tick)
			return now
		})
	}
}

func TestSweepCloseFailureIsReturned(t *testing.T) {
	w := &memWriter{closeErr: errCloseFails}
	r := memRunner(Sweep{Step: 10, Max: 30, Accesses: 1}, w)

	routine, _ := Lookup(Construction)
	rows, err := r.sweep(routine, "mem/out.csv", 1)

	if !errors.Is(err, errCloseFails) {
		t.Fatalf("err = %v, want close failure", err)
	}
	if rows != 3 {
		t.Errorf("rows = %d, want 3", rows)
	}
	if len(w.rows) != 4 {
		t.Errorf("stored rows = %d, want header + 3", len(w.rows))
	}
}

func TestSweepWriteFailureStillCloses(t *testing.T) {
	w := &memWriter{failAfter: 2, closeErr: errCloseFails}
	r := memRunner(Sweep{Step: 10, Max: 50, Accesses: 1}, w)

	routine, _ := Lookup(Arithmetic)
	rows, err := r.sweep(routine, "mem/out.csv", 1)

	if !errors.Is(err, errDiskFull) {
		t.Errorf("err = %v, want write failure", err)
	}
	if !errors.Is(err, errCloseFails) {
		t.Errorf("err = %v, want close failure joined in", err)
	}
	if !w.closed {
		t.Error("writer not closed after write failure")
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1 before the failure", rows)
	}
}

func TestSweepHeaderFailureStillCloses(t *testing.T) {
	w := &memWriter{}
	r := memRunner(Sweep{Step: 10, Max: 10, Accesses: 1}, w)
	r.create = func(string) (rowWriter, error) {
		return &failingHeader{memWriter: w}, nil
	}

	routine, _ := Lookup(Logic)
	_, err := r.sweep(routine, "mem/out.csv", 1)

	if !errors.Is(err, errDiskFull) {
		t.Errorf("err = %v, want header write failure", err)
	}
	if !w.closed {
		t.Error("writer not closed after header failure")
	}
}

type failingHeader struct {
	*memWriter
}

func (f *failingHeader) EndLine() error { return errDiskFull }

func TestRunReportsCloseFailure(t *testing.T) {
	w := &memWriter{closeErr: errCloseFails}
	rec := newCountingRecorder()
	r := memRunner(Sweep{Step: 10, Max: 10, Accesses: 1}, w)
	r.Recorder = rec

	_, err := r.Run(context.Background(), Access)

	if !errors.Is(err, errCloseFails) {
		t.Fatalf("err = %v, want close failure", err)
	}
	if !strings.Contains(err.Error(), "routine access") {
		t.Errorf("error %q does not name the routine", err)
	}
	if rec.failures[Access] != 1 {
		t.Errorf("failures = %d, want 1", rec.failures[Access])
	}
}

func TestSweepResetsStopwatchBetweenSizes(t *testing.T) {
	const tick = 40 * time.Nanosecond

	for _, name := range []string{Construction, Arithmetic, Logic} {
		t.Run(name, func(t *testing.T) {
			w := &memWriter{}
			r := memRunner(Sweep{Step: 100, Max: 500, Accesses: 1}, w)
			r.newStopwatch = tickingStopwatch(tick)

			routine, _ := Lookup(name)
			if _, err := r.sweep(routine, "mem/out.csv", 1); err != nil {
				t.Fatalf("sweep failed: %v", err)
			}

			if len(w.rows) != 6 {
				t.Fatalf("stored rows = %d, want header + 5", len(w.rows))
			}

			// Each row holds one interval, not a running total.
			for i, row := range w.rows[1:] {
				if row[1] != int64(tick) {
					t.Errorf("row %d time = %v, want %d", i, row[1], int64(tick))
				}
			}
		})
	}
}

func TestSweepResetsAccessAverage(t *testing.T) {
	const tick = 30 * time.Nanosecond

	w := &memWriter{}
	r := memRunner(Sweep{Step: 100, Max: 400, Accesses: 5}, w)
	r.newStopwatch = tickingStopwatch(tick)

	routine, _ := Lookup(Access)
	if _, err := r.sweep(routine, "mem/out.csv", 1); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	for i, row := range w.rows[1:] {
		if row[2] != int64(tick) {
			t.Errorf("row %d time per access = %v, want %d", i, row[2], int64(tick))
		}
	}
}

func TestSizesNearMaxInt(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
		want  []int
	}{
		{
			name:  "step past half",
			sweep: Sweep{Step: math.MaxInt/2 + 1, Max: math.MaxInt, Accesses: 1},
			want:  []int{math.MaxInt/2 + 1},
		},
		{
			name:  "max is last step",
			sweep: Sweep{Step: math.MaxInt / 3, Max: math.MaxInt / 3 * 3, Accesses: 1},
			want:  []int{math.MaxInt / 3, math.MaxInt / 3 * 2, math.MaxInt / 3 * 3},
		},
		{
			name:  "max between steps",
			sweep: Sweep{Step: 4, Max: 10, Accesses: 1},
			want:  []int{4, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sweep.Sizes()
			if len(got) != len(tt.want) {
				t.Fatalf("Sizes() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Sizes()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}
