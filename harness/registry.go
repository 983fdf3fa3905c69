package harness

import (
	"path/filepath"
)

// Routine names.
const (
	Construction = "construction"
	Access       = "access"
	Arithmetic   = "arithmetic"
	Logic        = "logic"
)

// Routine is one timed primitive operation and the layout of its output.
type Routine struct {
	Name    string
	File    string
	Columns []string
	measure measureFunc
}

// KnownRoutines returns the routine names in run order.
func KnownRoutines() []string {
	return []string{Construction, Access, Arithmetic, Logic}
}

// ResolveOutput returns the CSV path a routine writes to under outDir.
func ResolveOutput(outDir, routine string) string {
	switch routine {
	case Construction:
		return filepath.Join(outDir, "array-building-times.csv")
	case Access:
		return filepath.Join(outDir, "array-access-times.csv")
	case Arithmetic:
		return filepath.Join(outDir, "arithmetic-times.csv")
	case Logic:
		return filepath.Join(outDir, "logic-times.csv")
	default:
		return filepath.Join(outDir, routine+"-times.csv")
	}
}

// Lookup returns the named routine.
func Lookup(name string) (Routine, bool) {
	switch name {
	case Construction:
		return Routine{
			Name:    Construction,
			File:    filepath.Base(ResolveOutput("", Construction)),
			Columns: []string{"size", "time (ns)"},
			measure: measureConstruction,
		}, true
	case Access:
		return Routine{
			Name:    Access,
			File:    filepath.Base(ResolveOutput("", Access)),
			Columns: []string{"array size", "index value", "time per access"},
			measure: measureAccess,
		}, true
	case Arithmetic:
		return Routine{
			Name:    Arithmetic,
			File:    filepath.Base(ResolveOutput("", Arithmetic)),
			Columns: []string{"size", "time in total (ns)", "average time (ns)", "total for first value"},
			measure: measureArithmetic,
		}, true
	case Logic:
		return Routine{
			Name:    Logic,
			File:    filepath.Base(ResolveOutput("", Logic)),
			Columns: []string{"size", "time in total (ns)", "average time (ns)", "min for first value"},
			measure: measureLogic,
		}, true
	default:
		return Routine{}, false
	}
}
