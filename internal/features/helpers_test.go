package features

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func intp(v int) *int { return &v }

func raceKey(monthDay, venue, raceNo string) models.RaceKey {
	return models.RaceKey{Year: "2023", MonthDay: monthDay, VenueCode: venue, RaceNumber: raceNo}
}

func mustDate(key models.RaceKey) time.Time {
	d, err := key.Date()
	if err != nil {
		panic(err)
	}
	return d
}

// classifiedEntry builds an entry as it looks after the join stage, ready
// for the classification stages.
func classifiedEntry(key models.RaceKey, horseID string, fieldSize int, corner1, corner4, finish int) models.Entry {
	return models.Entry{
		Key:             key,
		RaceDate:        mustDate(key),
		HorseID:         horseID,
		FieldSize:       fieldSize,
		CornerPositions: [4]*int{intp(corner1), nil, nil, intp(corner4)},
		FinishPosition:  intp(finish),
	}
}

// roiEntry builds a fully populated entry for the ROI groupers.
func roiEntry(horseID, jockeyID, venue string, distance int, surface, condition string, finish, oddsTenths, popularity int) models.Entry {
	key := models.RaceKey{Year: "2023", MonthDay: "0101", VenueCode: venue, RaceNumber: "01"}
	return models.Entry{
		Key:                key,
		RaceDate:           mustDate(key),
		HorseID:            horseID,
		HorseName:          "Horse " + horseID,
		JockeyID:           jockeyID,
		JockeyName:         "Jockey " + jockeyID,
		Distance:           distance,
		TrackSurfaceCode:   surface,
		TrackConditionCode: condition,
		FieldSize:          16,
		FinishPosition:     intp(finish),
		OddsTenths:         intp(oddsTenths),
		PopularityRank:     intp(popularity),
	}
}
