// Package models defines the record types flowing through the feature pipeline.
package models

import (
	"time"
)

// RaceKey identifies a single race in the JV-Data mirror. All four components
// are fixed-width, zero-padded strings exactly as stored upstream.
type RaceKey struct {
	Year       string `json:"year"`
	MonthDay   string `json:"month_day"`
	VenueCode  string `json:"venue_code"`
	RaceNumber string `json:"race_number"`
}

// String returns the composite race id built by concatenating the four
// components (kaisai_nen + kaisai_tsukihi + keibajo_code + race_bango).
func (k RaceKey) String() string {
	return k.Year + k.MonthDay + k.VenueCode + k.RaceNumber
}

// IsValid reports whether every key component is present.
func (k RaceKey) IsValid() bool {
	return k.Year != "" && k.MonthDay != "" && k.VenueCode != "" && k.RaceNumber != ""
}

// Date parses the race date from the year and month-day components.
func (k RaceKey) Date() (time.Time, error) {
	return time.Parse("20060102", k.Year+k.MonthDay)
}

// RaceRecord holds the base information of one race. Produced once per race,
// immutable after extraction.
type RaceRecord struct {
	Key                RaceKey `json:"key"`
	Distance           int     `json:"distance"`
	TrackSurfaceCode   string  `json:"track_surface_code"`
	WeatherCode        string  `json:"weather_code"`
	TrackConditionCode string  `json:"track_condition_code"`
	FieldSize          int     `json:"field_size"`
	GradeCode          string  `json:"grade_code"`
	ClassCode          string  `json:"class_code"`
}

// ResultEntry holds one horse's result in one race. Numeric columns that the
// pipeline classifies on are kept as raw strings here; coercion to a typed
// value (or the missing marker) happens when entries are joined.
type ResultEntry struct {
	Key              RaceKey   `json:"key"`
	HorseID          string    `json:"horse_id"`
	HorseName        string    `json:"horse_name"`
	PostPosition     int       `json:"post_position"`
	HorseNumber      int       `json:"horse_number"`
	Age              int       `json:"age"`
	SexCode          string    `json:"sex_code"`
	Weight           int       `json:"weight"`
	WeightChangeSign string    `json:"weight_change_sign"`
	WeightChange     int       `json:"weight_change"`
	JockeyID         string    `json:"jockey_id"`
	JockeyName       string    `json:"jockey_name"`
	TrainerID        string    `json:"trainer_id"`
	TrainerName      string    `json:"trainer_name"`
	FinishPosition   string    `json:"finish_position"`
	Time             string    `json:"time"`
	Last3FTime       string    `json:"last_3f_time"`
	Odds             string    `json:"odds"` // win odds in tenths
	PopularityRank   string    `json:"popularity_rank"`
	CornerPositions  [4]string `json:"corner_positions"`
}

// PedigreeRecord is static reference data for one horse, looked up by horse id.
type PedigreeRecord struct {
	HorseID           string `json:"horse_id"`
	HorseName         string `json:"horse_name"`
	BirthDate         string `json:"birth_date"`
	SexCode           string `json:"sex_code"`
	SireID            string `json:"sire_id"`
	SireName          string `json:"sire_name"`
	DamID             string `json:"dam_id"`
	DamName           string `json:"dam_name"`
	BroodmareSireID   string `json:"broodmare_sire_id"`
	BroodmareSireName string `json:"broodmare_sire_name"`
}
