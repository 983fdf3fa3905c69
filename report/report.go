// Package report summarises a benchmark run: which files were written and
// how many samples each holds.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/weiihann/primbench/harness"
)

// Generate writes a markdown summary table for the given results.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Benchmark Output")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Routine | File | Rows | Sweep Time | Size |")
	fmt.Fprintln(w, "|---------|------|------|------------|------|")

	total := 0
	for _, r := range results {
		fmt.Fprintf(w, "| %s | %s | %d | %s | %s |\n",
			r.Routine,
			r.Path,
			r.Rows,
			formatMs(r.ElapsedMs),
			formatBytes(r.SizeBytes),
		)

		total += r.Rows
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Samples recorded: %d\n", total)

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func formatMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
