// Package emoji provides the symbols bit prints in front of status lines.
package emoji

// Status symbols.
const (
	// Success marks a finished step.
	Success = "✓"

	// Error marks a failed step or a missing prerequisite.
	Error = "✗"

	// Warning marks a non-fatal problem, e.g. an API key with write permissions.
	Warning = "!"

	// Info marks context lines.
	Info = "i"

	// Pending marks an item that still needs work, e.g. an asset without icon.
	Pending = "▶"

	// Done is printed when a report has nothing left to do.
	Done = "✨"

	// Counter prefixes running totals ("Displayed 3 of 10").
	Counter = "●"
)
