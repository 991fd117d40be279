package features

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ScorePatterns aggregates lag-labeled entries by previous-race pattern into
// win-rate, ROI and beat-expectation scores for the current race. Entries
// without a previous race carry no pattern signal and are excluded.
//
// The score centers ROI at breakeven (100) and the over-popularity rate at
// 50%: one point per 20 ROI points and one per 10 rate points of deviation.
func ScorePatterns(entries []models.Entry) []models.PatternStat {
	type acc struct {
		raceCount           int
		winCount            int
		top3Count           int
		overPopularityCount int
		winOddsSum          decimal.Decimal
		popularitySum       int
		popularityCount     int
	}

	accs := make(map[models.Pattern]*acc)
	for i := range entries {
		e := &entries[i]
		if !e.HasPrev {
			continue
		}
		a, ok := accs[e.PrevPattern]
		if !ok {
			a = &acc{winOddsSum: decimal.Zero}
			accs[e.PrevPattern] = a
		}
		a.raceCount++
		if e.IsWin() {
			a.winCount++
			a.winOddsSum = a.winOddsSum.Add(e.WinOdds())
		}
		if e.IsTop3() {
			a.top3Count++
		}
		if e.BeatPopularity() {
			a.overPopularityCount++
		}
		if e.PopularityRank != nil {
			a.popularitySum += *e.PopularityRank
			a.popularityCount++
		}
	}

	stats := make([]models.PatternStat, 0, len(accs))
	for pattern, a := range accs {
		count := decimal.NewFromInt(int64(a.raceCount))
		roi := a.winOddsSum.Div(count).Mul(hundred)
		overPopularityRate := float64(a.overPopularityCount) / float64(a.raceCount) * 100

		avgPopularity := 0.0
		if a.popularityCount > 0 {
			avgPopularity = float64(a.popularitySum) / float64(a.popularityCount)
		}

		stats = append(stats, models.PatternStat{
			Pattern:             pattern,
			RaceCount:           a.raceCount,
			WinCount:            a.winCount,
			Top3Count:           a.top3Count,
			OverPopularityCount: a.overPopularityCount,
			WinOddsSum:          a.winOddsSum,
			AvgPopularity:       avgPopularity,
			WinRate:             float64(a.winCount) / float64(a.raceCount) * 100,
			Top3Rate:            float64(a.top3Count) / float64(a.raceCount) * 100,
			OverPopularityRate:  overPopularityRate,
			ROI:                 roi,
			Score:               (roi.InexactFloat64()-100)/20 + (overPopularityRate-50)/10,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Pattern < stats[j].Pattern
	})
	return stats
}
