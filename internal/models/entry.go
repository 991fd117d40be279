package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunningStyle is the per-horse per-race tactical classification derived from
// early and late positional data.
type RunningStyle string

const (
	StyleFrontRunner RunningStyle = "front_runner"
	StyleCloser      RunningStyle = "closer"
	StyleDeepCloser  RunningStyle = "deep_closer"
	StyleUnknown     RunningStyle = "unknown"
)

// PaceType is the race-level pace classification derived from how well
// front-running horses fared.
type PaceType string

const (
	PaceSlow    PaceType = "slow"
	PaceHigh    PaceType = "high"
	PaceUnknown PaceType = "unknown"
)

// PaceAdvantage states whether a horse's running style suited the race's
// realized pace.
type PaceAdvantage string

const (
	Advantaged       PaceAdvantage = "advantaged"
	Disadvantaged    PaceAdvantage = "disadvantaged"
	NeutralAdvantage PaceAdvantage = "neutral"
)

// FinishCategory bands a finish position into outcome tiers.
type FinishCategory string

const (
	RunStrong   FinishCategory = "strong_run"
	RunMediocre FinishCategory = "mediocre_run"
	RunPoor     FinishCategory = "poor_run"
	RunUnknown  FinishCategory = "unknown"
)

// Pattern combines a horse's previous-race advantage label with its
// previous-race outcome category. Only the five combinations carrying a
// pace signal are named; everything else is neutral.
type Pattern string

const (
	PatternDisadvantagedPoor     Pattern = "disadvantaged_to_poor_run"
	PatternDisadvantagedMediocre Pattern = "disadvantaged_to_mediocre_run"
	PatternDisadvantagedStrong   Pattern = "disadvantaged_to_strong_run"
	PatternAdvantagedPoor        Pattern = "advantaged_to_poor_run"
	PatternAdvantagedStrong      Pattern = "advantaged_to_strong_run"
	PatternNeutral               Pattern = "neutral"
)

// Entry is the joined race + result record for one horse in one race.
// Exactly one Entry exists per (race key, horse id) pair. The classification
// stages fill in the derived fields progressively; every stage produces a new
// slice of values rather than mutating shared state.
//
// Numeric result columns that can be absent or non-numeric upstream use nil
// as the explicit missing marker and are never silently zeroed.
type Entry struct {
	Key      RaceKey   `json:"key"`
	RaceDate time.Time `json:"race_date"`

	HorseID    string `json:"horse_id"`
	HorseName  string `json:"horse_name"`
	JockeyID   string `json:"jockey_id"`
	JockeyName string `json:"jockey_name"`

	FinishPosition  *int    `json:"finish_position"`
	CornerPositions [4]*int `json:"corner_positions"`
	OddsTenths      *int    `json:"odds_tenths"`
	PopularityRank  *int    `json:"popularity_rank"`

	Distance           int    `json:"distance"`
	TrackSurfaceCode   string `json:"track_surface_code"`
	TrackConditionCode string `json:"track_condition_code"`
	FieldSize          int    `json:"field_size"`
	GradeCode          string `json:"grade_code"`

	RunningStyle  RunningStyle  `json:"running_style,omitempty"`
	PaceType      PaceType      `json:"pace_type,omitempty"`
	PaceAdvantage PaceAdvantage `json:"pace_advantage,omitempty"`

	// Lag fields are only meaningful when HasPrev is true. A horse's first
	// start in the data set has no predecessor and is excluded from all
	// pattern output.
	HasPrev            bool           `json:"has_prev"`
	PrevPaceAdvantage  PaceAdvantage  `json:"prev_pace_advantage,omitempty"`
	PrevFinishPosition *int           `json:"prev_finish_position,omitempty"`
	PrevFinishCategory FinishCategory `json:"prev_finish_category,omitempty"`
	PrevPattern        Pattern        `json:"prev_pattern,omitempty"`
}

// WinOdds converts the tenths-encoded odds column to decimal odds.
// Returns zero when the odds are missing.
func (e *Entry) WinOdds() decimal.Decimal {
	if e.OddsTenths == nil {
		return decimal.Zero
	}
	return decimal.New(int64(*e.OddsTenths), -1)
}

// IsWin reports whether the entry finished first.
func (e *Entry) IsWin() bool {
	return e.FinishPosition != nil && *e.FinishPosition == 1
}

// IsTop3 reports whether the entry finished in the first three.
func (e *Entry) IsTop3() bool {
	return e.FinishPosition != nil && *e.FinishPosition <= 3
}

// BeatPopularity reports whether the entry finished numerically better than
// its betting-popularity rank. False when either field is missing.
func (e *Entry) BeatPopularity() bool {
	if e.FinishPosition == nil || e.PopularityRank == nil {
		return false
	}
	return *e.FinishPosition < *e.PopularityRank
}
