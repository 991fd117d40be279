// Package features implements the pace-disadvantage and ROI feature engines
// that derive betting-relevant statistics from historical race results.
package features

import (
	"github.com/sirupsen/logrus"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// JoinEntries merges race records and result entries on the composite race
// key into unified Entry records. The join is inner: result rows without a
// matching race record are dropped without error. An empty input on either
// side yields an empty result.
//
// Numeric result columns are coerced here; non-numeric values become the nil
// missing marker and push the entry toward the unknown classifications
// downstream instead of failing the stage.
func JoinEntries(races []models.RaceRecord, results []models.ResultEntry, logger *logrus.Logger) []models.Entry {
	log := logger.WithField("stage", "join")

	if len(races) == 0 || len(results) == 0 {
		log.WithFields(logrus.Fields{
			"races":   len(races),
			"results": len(results),
		}).Warn("Empty input record set, no entries produced")
		return nil
	}

	racesByKey := make(map[string]models.RaceRecord, len(races))
	for _, race := range races {
		if !race.Key.IsValid() {
			log.WithField("key", race.Key.String()).Warn("Race record with incomplete key skipped")
			continue
		}
		racesByKey[race.Key.String()] = race
	}

	entries := make([]models.Entry, 0, len(results))
	for _, res := range results {
		if !res.Key.IsValid() {
			log.WithFields(logrus.Fields{
				"key":   res.Key.String(),
				"horse": res.HorseID,
			}).Warn("Result entry with incomplete key skipped")
			continue
		}

		race, ok := racesByKey[res.Key.String()]
		if !ok {
			// Inner join: unmatched result rows are excluded, not reported.
			continue
		}

		date, err := res.Key.Date()
		if err != nil {
			log.WithFields(logrus.Fields{
				"key":   res.Key.String(),
				"horse": res.HorseID,
			}).Warn("Unparseable race date, entry skipped")
			continue
		}

		entry := models.Entry{
			Key:                res.Key,
			RaceDate:           date,
			HorseID:            res.HorseID,
			HorseName:          res.HorseName,
			JockeyID:           res.JockeyID,
			JockeyName:         res.JockeyName,
			FinishPosition:     models.CoerceInt(res.FinishPosition),
			OddsTenths:         models.CoerceInt(res.Odds),
			PopularityRank:     models.CoerceInt(res.PopularityRank),
			Distance:           race.Distance,
			TrackSurfaceCode:   race.TrackSurfaceCode,
			TrackConditionCode: race.TrackConditionCode,
			FieldSize:          race.FieldSize,
			GradeCode:          race.GradeCode,
		}
		for i, corner := range res.CornerPositions {
			entry.CornerPositions[i] = models.CoerceInt(corner)
		}
		entries = append(entries, entry)
	}

	log.WithFields(logrus.Fields{
		"entries": len(entries),
		"dropped": len(results) - len(entries),
	}).Debug("Joined race and result records")

	return entries
}
