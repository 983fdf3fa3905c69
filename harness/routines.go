package harness

import (
	"github.com/weiihann/primbench/stopwatch"
	"github.com/weiihann/primbench/workload"
)

// Package-level sinks keep timed work observable so it is not optimised
// away.
var (
	sinkInts []int
	sinkInt  int
)

// env is the per-sweep state shared by every size of one routine.
type env struct {
	sw       *stopwatch.Stopwatch
	gen      *workload.Generator
	accesses int
}

// measureFunc times one size and returns the row cells (size first) and the
// elapsed nanoseconds that the row reports.
type measureFunc func(e *env, size int) (row []any, nanos int64)

func measureConstruction(e *env, size int) ([]any, int64) {
	e.sw.Start()
	arr := make([]int, size)
	e.sw.Stop()

	sinkInts = arr

	nanos := e.sw.ElapsedNanos()

	return []any{size, nanos}, nanos
}

// measureAccess reports the last sampled index, not a summary of all of
// them.
func measureAccess(e *env, size int) ([]any, int64) {
	arr := make([]int, size)

	var index, val int
	for i := 0; i < e.accesses; i++ {
		index = e.gen.Index(size)

		e.sw.Start()
		val = arr[index]
		e.sw.Stop()
	}

	sinkInt = val

	perAccess := e.sw.ElapsedNanos() / int64(e.accesses)

	return []any{size, index, perAccess}, perAccess
}

func measureArithmetic(e *env, size int) ([]any, int64) {
	a := make([]int, size)
	b := make([]int, size)
	sum := make([]int, size)

	e.gen.DigitPairs(a, b)

	e.sw.Start()
	for i := range sum {
		sum[i] = a[i] + b[i]
	}
	e.sw.Stop()

	total := e.sw.ElapsedNanos()

	return []any{size, total, total / int64(size), sum[0]}, total
}

func measureLogic(e *env, size int) ([]any, int64) {
	a := make([]int32, size)
	b := make([]int32, size)
	low := make([]int32, size)

	e.gen.Int32Pairs(a, b)

	e.sw.Start()
	for i := range low {
		if a[i] < b[i] {
			low[i] = a[i]
		} else {
			low[i] = b[i]
		}
	}
	e.sw.Stop()

	total := e.sw.ElapsedNanos()

	return []any{size, total, total / int64(size), low[0]}, total
}
