package features

import (
	"sort"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// CategorizeFinish bands a finish position into outcome tiers. Rules are
// evaluated in order, first match wins: a finish of exactly 3 is a strong
// run, not a mediocre one. A missing position is RunUnknown.
func CategorizeFinish(pos *int) models.FinishCategory {
	if pos == nil {
		return models.RunUnknown
	}
	switch {
	case *pos <= 3:
		return models.RunStrong
	case *pos <= 5:
		return models.RunMediocre
	default:
		return models.RunPoor
	}
}

// NamePattern maps a previous-race advantage label and outcome category to a
// named pattern. Only the five combinations carrying a pace signal are
// named; everything else, advantaged-mediocre included, is neutral.
func NamePattern(adv models.PaceAdvantage, cat models.FinishCategory) models.Pattern {
	switch {
	case adv == models.Disadvantaged && cat == models.RunPoor:
		return models.PatternDisadvantagedPoor
	case adv == models.Disadvantaged && cat == models.RunMediocre:
		return models.PatternDisadvantagedMediocre
	case adv == models.Disadvantaged && cat == models.RunStrong:
		return models.PatternDisadvantagedStrong
	case adv == models.Advantaged && cat == models.RunPoor:
		return models.PatternAdvantagedPoor
	case adv == models.Advantaged && cat == models.RunStrong:
		return models.PatternAdvantagedStrong
	default:
		return models.PatternNeutral
	}
}

// AttachPreviousRace orders entries per horse by race date ascending and
// attaches the immediately preceding entry's advantage label and finish
// position to each later start. Same-date starts break ties on the race key
// string so the ordering is deterministic.
//
// A horse's first entry has no predecessor: its lag fields stay absent and
// HasPrev stays false, which excludes it from all downstream pattern output.
func AttachPreviousRace(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HorseID != out[j].HorseID {
			return out[i].HorseID < out[j].HorseID
		}
		if !out[i].RaceDate.Equal(out[j].RaceDate) {
			return out[i].RaceDate.Before(out[j].RaceDate)
		}
		return out[i].Key.String() < out[j].Key.String()
	})

	for i := range out {
		if i == 0 || out[i].HorseID != out[i-1].HorseID {
			continue
		}
		prev := &out[i-1]
		out[i].HasPrev = true
		out[i].PrevPaceAdvantage = prev.PaceAdvantage
		out[i].PrevFinishPosition = prev.FinishPosition
		out[i].PrevFinishCategory = CategorizeFinish(prev.FinishPosition)
		out[i].PrevPattern = NamePattern(out[i].PrevPaceAdvantage, out[i].PrevFinishCategory)
	}
	return out
}
