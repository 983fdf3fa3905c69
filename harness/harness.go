package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/weiihann/primbench/stopwatch"
	"github.com/weiihann/primbench/tabular"
	"github.com/weiihann/primbench/workload"
)

// Fixed sweep parameters.
const (
	Step     = 10_000
	Max      = 1_000_000
	Accesses = 100
)

var (
	// ErrUnknownRoutine indicates a routine name not in KnownRoutines.
	ErrUnknownRoutine = errors.New("unknown routine")

	// ErrInvalidSweep indicates a Sweep that yields no sizes.
	ErrInvalidSweep = errors.New("invalid sweep")
)

// Sweep describes the array sizes a routine is measured at: Step, 2*Step,
// and so on up to and including Max.
type Sweep struct {
	Step     int
	Max      int
	Accesses int
}

// DefaultSweep returns the fixed sweep of 100 sizes.
func DefaultSweep() Sweep {
	return Sweep{Step: Step, Max: Max, Accesses: Accesses}
}

// Validate checks that the sweep yields at least one size.
func (s Sweep) Validate() error {
	switch {
	case s.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidSweep, s.Step)
	case s.Max < s.Step:
		return fmt.Errorf("%w: max %d is below step %d", ErrInvalidSweep, s.Max, s.Step)
	case s.Accesses <= 0:
		return fmt.Errorf("%w: accesses must be positive, got %d", ErrInvalidSweep, s.Accesses)
	}

	return nil
}

// Sizes returns every size in the sweep in increasing order.
func (s Sweep) Sizes() []int {
	if s.Step <= 0 || s.Max < s.Step {
		return nil
	}

	sizes := make([]int, 0, s.Max/s.Step)
	for size := s.Step; ; size += s.Step {
		sizes = append(sizes, size)

		// Stop before the next step passes Max or overflows int.
		if size > s.Max-s.Step {
			break
		}
	}

	return sizes
}

// Recorder receives samples as they are written.
type Recorder interface {
	ObserveSample(routine string, nanos int64)
	ObserveSweep(routine string, d time.Duration)
	ObserveFailure(routine string)
}

// rowWriter is the part of *tabular.Writer a sweep writes through.
type rowWriter interface {
	AddEntry(v any)
	AddEntries(vs ...any)
	EndLine() error
	Close() error
}

func createTabular(path string) (rowWriter, error) {
	w, err := tabular.Create(path)
	if err != nil {
		return nil, err
	}

	return w, nil
}

type nopRecorder struct{}

func (nopRecorder) ObserveSample(string, int64) {}

func (nopRecorder) ObserveSweep(string, time.Duration) {}

func (nopRecorder) ObserveFailure(string) {}

// Runner sweeps routines and writes their CSV output under OutDir.
type Runner struct {
	OutDir   string
	Sweep    Sweep
	Seed     int64
	Logger   *slog.Logger
	Recorder Recorder

	create       func(path string) (rowWriter, error)
	newStopwatch func() *stopwatch.Stopwatch
}

// NewRunner creates a Runner. Each routine draws its inputs from a
// generator derived from seed. A nil recorder discards samples.
func NewRunner(
	outDir string,
	sweep Sweep,
	seed int64,
	logger *slog.Logger,
	recorder Recorder,
) *Runner {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Runner{
		OutDir:   outDir,
		Sweep:    sweep,
		Seed:     seed,
		Logger:   logger,
		Recorder: recorder,

		create:       createTabular,
		newStopwatch: stopwatch.New,
	}
}

// RunAll runs the named routines in order and stops at the first failure.
func (r *Runner) RunAll(ctx context.Context, names []string) ([]Result, error) {
	results := make([]Result, 0, len(names))

	for _, name := range names {
		result, err := r.Run(ctx, name)
		if err != nil {
			return results, err
		}

		results = append(results, *result)
	}

	return results, nil
}

// Run sweeps a single routine and returns a description of its output.
func (r *Runner) Run(ctx context.Context, name string) (*Result, error) {
	routine, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRoutine, name)
	}

	if err := r.Sweep.Validate(); err != nil {
		return nil, err
	}

	path := ResolveOutput(r.OutDir, name)
	seed := workload.Derive(r.Seed, name)
	logger := r.Logger.With(slog.String("routine", name))

	logger.InfoContext(ctx, "starting routine",
		slog.String("path", path),
		slog.Int("step", r.Sweep.Step),
		slog.Int("max", r.Sweep.Max),
	)

	wallStart := time.Now()

	rows, err := r.sweep(routine, path, seed)
	if err != nil {
		r.Recorder.ObserveFailure(name)
		logger.ErrorContext(ctx, "routine failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)

		return nil, fmt.Errorf("routine %s: %w", name, err)
	}

	wallElapsed := time.Since(wallStart)
	r.Recorder.ObserveSweep(name, wallElapsed)

	logger.InfoContext(ctx, "routine finished",
		slog.Int("rows", rows),
		slog.Duration("wall_time", wallElapsed),
	)

	size, err := fileSize(path)
	if err != nil {
		logger.WarnContext(ctx, "failed to measure output size",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}

	return &Result{
		Routine:   name,
		Path:      path,
		Columns:   routine.Columns,
		Rows:      rows,
		Seed:      seed,
		ElapsedMs: wallElapsed.Milliseconds(),
		SizeBytes: size,
	}, nil
}

// sweep writes the header and one row per size. The writer is closed on
// every return path and a close failure is joined into err.
func (r *Runner) sweep(routine Routine, path string, seed int64) (rows int, err error) {
	create, newStopwatch := r.create, r.newStopwatch
	if create == nil {
		create = createTabular
	}
	if newStopwatch == nil {
		newStopwatch = stopwatch.New
	}

	w, err := create(path)
	if err != nil {
		return 0, err
	}

	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	for _, col := range routine.Columns {
		w.AddEntry(col)
	}

	if err := w.EndLine(); err != nil {
		return 0, err
	}

	e := &env{
		sw:       newStopwatch(),
		gen:      workload.NewGenerator(seed),
		accesses: r.Sweep.Accesses,
	}

	for _, size := range r.Sweep.Sizes() {
		row, nanos := routine.measure(e, size)

		w.AddEntries(row...)
		if err := w.EndLine(); err != nil {
			return rows, err
		}

		rows++
		r.Recorder.ObserveSample(routine.Name, nanos)

		e.sw.Reset()
	}

	return rows, nil
}

func fileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return uint64(info.Size()), nil
}
