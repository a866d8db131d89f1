// Package types defines every cross‑package data structure used by the consolidator CLI.
package types

const (
	// DefaultOutputFileName is the output file written when no name is configured.
	DefaultOutputFileName = "consolidated_code.txt"

	// SkipReasonBinary marks a file skipped because its content is not valid text.
	SkipReasonBinary = "binary"
	// SkipReasonReadError marks a file skipped because reading it failed.
	SkipReasonReadError = "read-error"
)

// Options carries the per-run parameters collected by the presentation layer.
type Options struct {
	OutputFileName        string
	IncludeSubdirectories bool
	IncludeTree           bool
	// ExcludedFolders holds normalized absolute directory paths. Membership
	// is tested by exact string equality during traversal; validation that
	// each path lies under the root belongs to the caller.
	ExcludedFolders map[string]struct{}
}

// SkippedFile records one source file omitted from the consolidated output.
type SkippedFile struct {
	Path   string
	Reason string
	Detail string
}

// Result reports the outcome of a consolidation run.
type Result struct {
	OutputPath     string
	FilesProcessed int
	Skipped        []SkippedFile
}
