package timing

import "profiler/internal/report"

// Default is the process-wide Profiler used by the package-level functions.
var Default = New()

// Begin opens a region on Default.
func Begin(label string) { Default.Begin(label) }

// End closes the innermost region on Default.
func End() { Default.End() }

// Render writes and clears Default's ledger.
func Render(unit report.Unit) { Default.Render(unit) }
