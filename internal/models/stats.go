package models

import (
	"github.com/shopspring/decimal"
)

// TrackType distinguishes racing surfaces derived from the surface-code prefix.
type TrackType string

const (
	TrackTurf  TrackType = "turf"
	TrackDirt  TrackType = "dirt"
	TrackOther TrackType = "other"
)

// DistanceBand groups race distances into betting-relevant bands.
type DistanceBand string

const (
	DistanceShort  DistanceBand = "short"  // <= 1400m
	DistanceMiddle DistanceBand = "middle" // <= 2000m
	DistanceLong   DistanceBand = "long"
)

// RepeaterLevel bands a horse's historical win rate at a specific
// course/condition into ordered tiers.
type RepeaterLevel string

const (
	WeakRepeater    RepeaterLevel = "WEAK_REPEATER"    // win rate <= 10
	AverageRepeater RepeaterLevel = "AVERAGE_REPEATER" // win rate <= 15
	GoodRepeater    RepeaterLevel = "GOOD_REPEATER"    // win rate <= 25
	StrongRepeater  RepeaterLevel = "STRONG_REPEATER"  // win rate > 25
)

// PatternStat is the terminal aggregate for one previous-race pattern.
// Percentages are expressed on a 0-100 scale; ROI of 100 is breakeven.
type PatternStat struct {
	Pattern             Pattern         `json:"pattern"`
	RaceCount           int             `json:"race_count"`
	WinCount            int             `json:"win_count"`
	Top3Count           int             `json:"top3_count"`
	OverPopularityCount int             `json:"over_popularity_count"`
	WinOddsSum          decimal.Decimal `json:"win_odds_sum"`
	AvgPopularity       float64         `json:"avg_popularity"`
	WinRate             float64         `json:"win_rate"`
	Top3Rate            float64         `json:"top3_rate"`
	OverPopularityRate  float64         `json:"over_popularity_rate"`
	ROI                 decimal.Decimal `json:"roi"`
	Score               float64         `json:"score"`
}

// ROIStat is the terminal aggregate for one group of the ROI engine. The
// three groupers share the struct; dimension fields not used by a grouper
// stay empty and are omitted from JSON output.
type ROIStat struct {
	SireID     string `json:"sire_id,omitempty"`
	SireName   string `json:"sire_name,omitempty"`
	JockeyID   string `json:"jockey_id,omitempty"`
	JockeyName string `json:"jockey_name,omitempty"`
	HorseID    string `json:"horse_id,omitempty"`
	HorseName  string `json:"horse_name,omitempty"`

	CourseName     string       `json:"course_name,omitempty"`
	TrackType      TrackType    `json:"track_type,omitempty"`
	TrackCondition string       `json:"track_condition,omitempty"`
	DistanceBand   DistanceBand `json:"distance_band,omitempty"`

	Count         int             `json:"count"`
	WinCount      int             `json:"win_count"`
	WinOddsSum    decimal.Decimal `json:"win_odds_sum"`
	AvgPopularity float64         `json:"avg_popularity"`
	WinRate       float64         `json:"win_rate"`
	ROI           decimal.Decimal `json:"roi"`
	AvgWinOdds    decimal.Decimal `json:"avg_win_odds"`

	RepeaterLevel RepeaterLevel `json:"repeater_level,omitempty"`
}
