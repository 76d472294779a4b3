// Package latepolicy computes lateness and score penalties for submissions.
// It is the only place the grace/penalty arithmetic lives; every surface
// that reports lateness (submit responses, listings, grading, gradebooks)
// goes through Evaluate.
package latepolicy

import (
	"fmt"
	"math"
	"time"
)

const minutesPerDay = 24 * 60

// Config carries the tunable late-policy knobs. A value is handed to each
// consumer at construction time so tests and future per-course overrides can
// vary it without shared globals.
type Config struct {
	GraceMinutes  int
	PenaltyPerDay float64
	PenaltyCap    float64
}

// Default returns the product defaults: 10 grace minutes, 10% deducted per
// day late, capped at 50%.
func Default() Config {
	return Config{GraceMinutes: 10, PenaltyPerDay: 0.10, PenaltyCap: 0.50}
}

// Result describes the outcome of evaluating one submission time against a
// deadline.
type Result struct {
	IsLate        bool     `json:"is_late"`
	LateByMinutes *int     `json:"late_by_minutes"`
	DaysLate      int      `json:"days_late"`
	Multiplier    float64  `json:"multiplier"`
}

// Evaluate computes lateness for a submission. A nil dueAt means the
// assignment can never be late. Both timestamps are normalised to UTC before
// comparison. LateByMinutes carries the raw minute count whenever a due date
// exists, even inside the grace window; IsLate flips only once the grace
// window is exhausted. Any fraction of a day past grace counts as a full day.
func Evaluate(cfg Config, dueAt *time.Time, submittedAt time.Time) Result {
	if dueAt == nil {
		return Result{Multiplier: 1}
	}

	due := dueAt.UTC()
	submitted := submittedAt.UTC()

	if !submitted.After(due) {
		zero := 0
		return Result{LateByMinutes: &zero, Multiplier: 1}
	}

	lateMinutes := int(submitted.Sub(due) / time.Minute)
	result := Result{LateByMinutes: &lateMinutes, Multiplier: 1}

	if lateMinutes <= cfg.GraceMinutes {
		return result
	}

	result.IsLate = true
	result.DaysLate = (lateMinutes + minutesPerDay - 1) / minutesPerDay

	deduction := math.Min(float64(result.DaysLate)*cfg.PenaltyPerDay, cfg.PenaltyCap)
	result.Multiplier = math.Max(0, 1-deduction)

	return result
}

// Deduction returns the fraction of the raw score removed by the penalty.
func (r Result) Deduction() float64 {
	return 1 - r.Multiplier
}

// ApplyPenalty returns the final score after the multiplier, rounded to two
// decimal places.
func (r Result) ApplyPenalty(rawScore float64) float64 {
	return math.Round(rawScore*r.Multiplier*100) / 100
}

// PenaltyNote renders the annotation appended to instructor feedback when a
// penalty was applied.
func (r Result) PenaltyNote(cfg Config) string {
	return fmt.Sprintf("Late penalty applied: -%.0f%% (%d day(s) late, grace %d min, cap %.0f%%)",
		r.Deduction()*100, r.DaysLate, cfg.GraceMinutes, cfg.PenaltyCap*100)
}
