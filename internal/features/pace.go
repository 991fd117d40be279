package features

import (
	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// advanceRateThreshold separates closers from deep closers: a horse beyond
// third at the first corner must make up more than 20% of the field between
// the fourth corner and the line to count as a closer.
const advanceRateThreshold = 0.2

// ClassifyRunningStyle derives the tactical style of one entry from its
// positional data. It is a pure function of (corner1, corner4, finish
// position, field size); missing positional data yields StyleUnknown rather
// than an error.
func ClassifyRunningStyle(e *models.Entry) models.RunningStyle {
	corner1 := e.CornerPositions[0]
	if corner1 == nil {
		return models.StyleUnknown
	}
	if *corner1 <= 3 {
		return models.StyleFrontRunner
	}

	corner4 := e.CornerPositions[3]
	if corner4 == nil || e.FinishPosition == nil || e.FieldSize <= 0 {
		return models.StyleUnknown
	}
	advanceRate := float64(*corner4-*e.FinishPosition) / float64(e.FieldSize)
	if advanceRate > advanceRateThreshold {
		return models.StyleCloser
	}
	return models.StyleDeepCloser
}

// ClassifyStyles returns a new entry set with RunningStyle populated.
func ClassifyStyles(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].RunningStyle = ClassifyRunningStyle(&out[i])
	}
	return out
}

// ClassifyPaceTypes derives a pace label per race from how the front-running
// horses fared, then broadcasts it onto every entry of that race. A race is
// slow-paced when the front-runners' average finish beats half the field
// size, high-paced otherwise. Races without a measurable front-runner finish
// receive PaceUnknown.
//
// Two passes: per-race aggregate first, then a lookup-based attach keyed by
// race id.
func ClassifyPaceTypes(entries []models.Entry) []models.Entry {
	type paceAgg struct {
		leadFinishSum   int
		leadFinishCount int
		fieldSize       int
	}

	aggs := make(map[string]*paceAgg)
	for i := range entries {
		e := &entries[i]
		raceID := e.Key.String()
		agg, ok := aggs[raceID]
		if !ok {
			agg = &paceAgg{fieldSize: e.FieldSize}
			aggs[raceID] = agg
		}
		if e.RunningStyle == models.StyleFrontRunner && e.FinishPosition != nil {
			agg.leadFinishSum += *e.FinishPosition
			agg.leadFinishCount++
		}
	}

	paceByRace := make(map[string]models.PaceType, len(aggs))
	for raceID, agg := range aggs {
		if agg.leadFinishCount == 0 || agg.fieldSize <= 0 {
			paceByRace[raceID] = models.PaceUnknown
			continue
		}
		leadAvgRank := float64(agg.leadFinishSum) / float64(agg.leadFinishCount)
		if leadAvgRank < float64(agg.fieldSize)/2 {
			paceByRace[raceID] = models.PaceSlow
		} else {
			paceByRace[raceID] = models.PaceHigh
		}
	}

	out := make([]models.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].PaceType = paceByRace[out[i].Key.String()]
	}
	return out
}

// ResolveAdvantage combines a running style with the realized race pace into
// a per-entry advantage label. Front-runners profit from a slow pace and
// closers from a high one; the inverse pairings are disadvantaged and every
// other combination, deep closers and unknowns included, is neutral.
func ResolveAdvantage(style models.RunningStyle, pace models.PaceType) models.PaceAdvantage {
	switch {
	case style == models.StyleFrontRunner && pace == models.PaceSlow:
		return models.Advantaged
	case style == models.StyleCloser && pace == models.PaceHigh:
		return models.Advantaged
	case style == models.StyleFrontRunner && pace == models.PaceHigh:
		return models.Disadvantaged
	case style == models.StyleCloser && pace == models.PaceSlow:
		return models.Disadvantaged
	default:
		return models.NeutralAdvantage
	}
}

// ResolveAdvantages returns a new entry set with PaceAdvantage populated.
func ResolveAdvantages(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].PaceAdvantage = ResolveAdvantage(out[i].RunningStyle, out[i].PaceType)
	}
	return out
}
