// =============================================================================
// Order Data Validator - Reporting & Error Aggregation
// =============================================================================
//
// This module aggregates per-record verdicts into the summary structures
// consumed by the export layer and the CLI:
//   - TableReport          : totals and validation rate for one run
//   - ErrorFrequencyReport : reason -> occurrence count over invalid records
//   - reason filtering     : invalid subset whose reasons intersect a selection
//   - quick fixes          : static suggestion lookup for the top error types
//
// =============================================================================

package validation

import (
	"sort"
	"strings"

	"github.com/ginjaninja78/order-data-validator/internal/types"
)

// =============================================================================
// TABLE REPORT
// =============================================================================

// TableReport is the aggregate over all verdicts of one validation run. It
// is derived from the verdict set and recomputed whenever that set changes,
// never mutated independently.
type TableReport struct {
	// Total is the number of records validated.
	Total int

	// ValidCount is the number of records with no violations.
	ValidCount int

	// InvalidCount is the number of records with at least one violation.
	InvalidCount int

	// ValidationRate is ValidCount/Total as a fraction in [0, 1].
	// Defined as 0 when Total is 0.
	ValidationRate float64
}

// BuildTableReport derives the aggregate report from a verdict set.
func BuildTableReport(verdicts []types.Verdict) TableReport {
	report := TableReport{Total: len(verdicts)}

	for _, v := range verdicts {
		if v.Status == types.StatusValid {
			report.ValidCount++
		} else {
			report.InvalidCount++
		}
	}

	if report.Total > 0 {
		report.ValidationRate = float64(report.ValidCount) / float64(report.Total)
	}
	return report
}

// =============================================================================
// ERROR FREQUENCY REPORT
// =============================================================================

// ErrorFrequencyReport maps each error reason to its occurrence count across
// the invalid records of one run. Insertion order is irrelevant; consumers
// sort by count descending for display.
type ErrorFrequencyReport map[string]int

// ReasonCount is one entry of a sorted frequency report.
type ReasonCount struct {
	Reason string
	Count  int
}

// AggregateErrors tallies every reason of every invalid verdict. Reasons are
// counted from the structured list directly; valid verdicts contribute
// nothing.
func AggregateErrors(verdicts []types.Verdict) ErrorFrequencyReport {
	report := make(ErrorFrequencyReport)
	for _, v := range verdicts {
		if v.Status != types.StatusInvalid {
			continue
		}
		for _, reason := range v.Reasons {
			report[reason]++
		}
	}
	return report
}

// SortedByCount returns the report entries ordered by count descending.
// Ties are broken alphabetically by reason so output is deterministic.
func (r ErrorFrequencyReport) SortedByCount() []ReasonCount {
	entries := make([]ReasonCount, 0, len(r))
	for reason, count := range r {
		entries = append(entries, ReasonCount{Reason: reason, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Reason < entries[j].Reason
	})
	return entries
}

// =============================================================================
// REASON FILTERING
// =============================================================================

// FilterByReasons returns the invalid verdicts whose reasons intersect the
// selected set: a verdict is included if it carries at least one selected
// reason (union/OR semantics). Original order is preserved. An empty
// selection matches nothing.
func FilterByReasons(verdicts []types.Verdict, selected map[string]bool) []types.Verdict {
	var filtered []types.Verdict

	for _, v := range verdicts {
		if v.Status != types.StatusInvalid {
			continue
		}
		for _, reason := range v.Reasons {
			if selected[reason] {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered
}

// =============================================================================
// QUICK FIX SUGGESTIONS
// =============================================================================

// quickFixPatterns maps a reason substring to a remediation suggestion. This
// is a static lookup, checked in order against the most frequent reasons.
var quickFixPatterns = []struct {
	Substring  string
	Suggestion string
}{
	{"Missing", "Fill in missing values"},
	{"Duplicate", "Remove duplicate entries"},
	{"Invalid date", "Use dd/mm/yyyy or mm-dd-yyyy format"},
}

// QuickFixes returns remediation suggestions for the topN most frequent
// error reasons, by substring match against the static pattern table.
// Suggestions are deduplicated and keep frequency order.
func (r ErrorFrequencyReport) QuickFixes(topN int) []string {
	entries := r.SortedByCount()
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	var fixes []string
	seen := make(map[string]bool)

	for _, entry := range entries {
		for _, pattern := range quickFixPatterns {
			if strings.Contains(entry.Reason, pattern.Substring) && !seen[pattern.Suggestion] {
				seen[pattern.Suggestion] = true
				fixes = append(fixes, pattern.Suggestion)
			}
		}
	}
	return fixes
}
