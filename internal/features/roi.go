package features

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// courseNames maps JRA venue codes to course names. Entries on venues
// outside this table (regional tracks) are excluded from course-keyed
// groupers, matching the behavior of grouping on a missing label.
var courseNames = map[string]string{
	"01": "Sapporo",
	"02": "Hakodate",
	"03": "Fukushima",
	"04": "Niigata",
	"05": "Tokyo",
	"06": "Nakayama",
	"07": "Chukyo",
	"08": "Kyoto",
	"09": "Hanshin",
	"10": "Kokura",
}

// trackConditions maps going codes to labels. Code 0 is recorded but unset.
var trackConditions = map[string]string{
	"0": "unset",
	"1": "firm",
	"2": "good",
	"3": "yielding",
	"4": "soft",
}

// TrackTypeOf derives the surface from the track-code prefix.
func TrackTypeOf(surfaceCode string) models.TrackType {
	switch {
	case strings.HasPrefix(surfaceCode, "1"):
		return models.TrackTurf
	case strings.HasPrefix(surfaceCode, "2"):
		return models.TrackDirt
	default:
		return models.TrackOther
	}
}

// TrackConditionOf resolves a going code to its label. The second return is
// false for codes outside the table; such entries drop out of
// condition-keyed groups.
func TrackConditionOf(code string) (string, bool) {
	label, ok := trackConditions[code]
	return label, ok
}

// CourseNameOf resolves a venue code to a course name.
func CourseNameOf(venueCode string) (string, bool) {
	name, ok := courseNames[venueCode]
	return name, ok
}

// DistanceBandOf bands a race distance: <=1400 short, <=2000 middle, else
// long. Non-positive distances are invalid and excluded.
func DistanceBandOf(distance int) (models.DistanceBand, bool) {
	switch {
	case distance <= 0:
		return "", false
	case distance <= 1400:
		return models.DistanceShort, true
	case distance <= 2000:
		return models.DistanceMiddle, true
	default:
		return models.DistanceLong, true
	}
}

// RepeaterLevelOf bands a win rate (0-100 scale) into repeater tiers.
// Cut points are <=10, <=15, <=25, >25 and must not be rounded.
func RepeaterLevelOf(winRate float64) models.RepeaterLevel {
	switch {
	case winRate <= 10:
		return models.WeakRepeater
	case winRate <= 15:
		return models.AverageRepeater
	case winRate <= 25:
		return models.GoodRepeater
	default:
		return models.StrongRepeater
	}
}

// roiGroup accumulates one group of the ROI engine. The dimension fields of
// stat are filled when the group is first seen; counters are folded in per
// entry and ratios derived once at the end.
type roiGroup struct {
	stat            models.ROIStat
	count           int
	winCount        int
	winOddsSum      decimal.Decimal
	popularitySum   int
	popularityCount int
}

func (g *roiGroup) add(e *models.Entry) {
	g.count++
	if e.IsWin() {
		g.winCount++
		g.winOddsSum = g.winOddsSum.Add(e.WinOdds())
	}
	if e.PopularityRank != nil {
		g.popularitySum += *e.PopularityRank
		g.popularityCount++
	}
}

func (g *roiGroup) finalize() models.ROIStat {
	stat := g.stat
	stat.Count = g.count
	stat.WinCount = g.winCount
	stat.WinOddsSum = g.winOddsSum

	count := decimal.NewFromInt(int64(g.count))
	stat.ROI = g.winOddsSum.Div(count).Mul(hundred)
	stat.WinRate = float64(g.winCount) / float64(g.count) * 100

	// Zero-guard: a group without a winner has no average winning odds.
	if g.winCount > 0 {
		stat.AvgWinOdds = g.winOddsSum.Div(decimal.NewFromInt(int64(g.winCount)))
	} else {
		stat.AvgWinOdds = decimal.Zero
	}

	if g.popularityCount > 0 {
		stat.AvgPopularity = float64(g.popularitySum) / float64(g.popularityCount)
	}
	return stat
}

// groupKeyFunc derives the group key and pre-filled dimension fields for one
// entry. ok=false excludes the entry from the grouper entirely.
type groupKeyFunc func(e *models.Entry) (key string, dims models.ROIStat, ok bool)

// aggregateROI runs the shared grouping algorithm: group entries by the full
// dimension tuple, accumulate counts, filter groups below minSamples and
// rank descending by ROI. Ties keep first-seen (insertion) order.
func aggregateROI(entries []models.Entry, keyOf groupKeyFunc, minSamples int) []models.ROIStat {
	groups := make(map[string]*roiGroup)
	var order []string

	for i := range entries {
		e := &entries[i]
		key, dims, ok := keyOf(e)
		if !ok {
			continue
		}
		g, exists := groups[key]
		if !exists {
			g = &roiGroup{stat: dims, winOddsSum: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.add(e)
	}

	stats := make([]models.ROIStat, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		if g.count < minSamples {
			continue
		}
		stats = append(stats, g.finalize())
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ROI.GreaterThan(stats[j].ROI)
	})
	return stats
}

const keySep = "\x1f"

// SireTrackROI aggregates return on investment per sire across surface and
// going, attributing each entry to its sire via the pedigree lookup. Entries
// without a pedigree record (or without a registered sire) are excluded, as
// are goings outside the condition table. Groups below minRaces are dropped.
func SireTrackROI(entries []models.Entry, pedigrees map[string]models.PedigreeRecord, minRaces int) []models.ROIStat {
	return aggregateROI(entries, func(e *models.Entry) (string, models.ROIStat, bool) {
		ped, ok := pedigrees[e.HorseID]
		if !ok || ped.SireID == "" {
			return "", models.ROIStat{}, false
		}
		condition, ok := TrackConditionOf(e.TrackConditionCode)
		if !ok {
			return "", models.ROIStat{}, false
		}
		trackType := TrackTypeOf(e.TrackSurfaceCode)
		dims := models.ROIStat{
			SireID:         ped.SireID,
			SireName:       ped.SireName,
			TrackType:      trackType,
			TrackCondition: condition,
		}
		return strings.Join([]string{ped.SireID, string(trackType), condition}, keySep), dims, true
	}, minRaces)
}

// JockeyCourseROI aggregates return on investment per jockey across course,
// surface and distance band. Groups below minRides are dropped.
func JockeyCourseROI(entries []models.Entry, minRides int) []models.ROIStat {
	return aggregateROI(entries, func(e *models.Entry) (string, models.ROIStat, bool) {
		course, ok := CourseNameOf(e.Key.VenueCode)
		if !ok {
			return "", models.ROIStat{}, false
		}
		band, ok := DistanceBandOf(e.Distance)
		if !ok {
			return "", models.ROIStat{}, false
		}
		trackType := TrackTypeOf(e.TrackSurfaceCode)
		dims := models.ROIStat{
			JockeyID:     e.JockeyID,
			JockeyName:   e.JockeyName,
			CourseName:   course,
			TrackType:    trackType,
			DistanceBand: band,
		}
		return strings.Join([]string{e.JockeyID, course, string(trackType), string(band)}, keySep), dims, true
	}, minRides)
}

// HorseCourseROI aggregates return on investment per horse across course,
// surface and distance band, and additionally bands each group's win rate
// into a repeater level. Groups below minRaces are dropped.
func HorseCourseROI(entries []models.Entry, minRaces int) []models.ROIStat {
	stats := aggregateROI(entries, func(e *models.Entry) (string, models.ROIStat, bool) {
		course, ok := CourseNameOf(e.Key.VenueCode)
		if !ok {
			return "", models.ROIStat{}, false
		}
		band, ok := DistanceBandOf(e.Distance)
		if !ok {
			return "", models.ROIStat{}, false
		}
		trackType := TrackTypeOf(e.TrackSurfaceCode)
		dims := models.ROIStat{
			HorseID:      e.HorseID,
			HorseName:    e.HorseName,
			CourseName:   course,
			TrackType:    trackType,
			DistanceBand: band,
		}
		return strings.Join([]string{e.HorseID, course, string(trackType), string(band)}, keySep), dims, true
	}, minRaces)

	for i := range stats {
		stats[i].RepeaterLevel = RepeaterLevelOf(stats[i].WinRate)
	}
	return stats
}
