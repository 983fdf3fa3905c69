// Package harness runs the primitive-operation timing routines and records
// one CSV row per array size.
package harness

// Result describes the output of one routine's size sweep.
type Result struct {
	Routine   string   `json:"routine" yaml:"routine"`
	Path      string   `json:"path" yaml:"path"`
	Columns   []string `json:"columns" yaml:"columns"`
	Rows      int      `json:"rows" yaml:"rows"`
	Seed      int64    `json:"seed" yaml:"seed"`
	ElapsedMs int64    `json:"elapsed_ms" yaml:"elapsed_ms"`
	SizeBytes uint64   `json:"size_bytes" yaml:"size_bytes"`
}
