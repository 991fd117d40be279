package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

func TestJoinEntriesInnerJoin(t *testing.T) {
	races := []models.RaceRecord{
		{Key: raceKey("0105", "05", "11"), Distance: 1600, TrackSurfaceCode: "10", TrackConditionCode: "1", FieldSize: 16},
	}
	results := []models.ResultEntry{
		{Key: raceKey("0105", "05", "11"), HorseID: "H1", FinishPosition: "01", Odds: "0035", PopularityRank: "02", CornerPositions: [4]string{"02", "02", "03", "03"}},
		// No matching race record: dropped silently.
		{Key: raceKey("0105", "06", "01"), HorseID: "H2", FinishPosition: "04"},
	}

	entries := JoinEntries(races, results, testLogger())
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "H1", e.HorseID)
	assert.Equal(t, 1600, e.Distance)
	assert.Equal(t, 16, e.FieldSize)
	require.NotNil(t, e.FinishPosition)
	assert.Equal(t, 1, *e.FinishPosition)
	require.NotNil(t, e.OddsTenths)
	assert.Equal(t, 35, *e.OddsTenths)
	require.NotNil(t, e.CornerPositions[0])
	assert.Equal(t, 2, *e.CornerPositions[0])
	assert.Equal(t, "2023-01-05", e.RaceDate.Format("2006-01-02"))
}

func TestJoinEntriesEmptyInputs(t *testing.T) {
	races := []models.RaceRecord{{Key: raceKey("0105", "05", "11"), FieldSize: 10}}
	results := []models.ResultEntry{{Key: raceKey("0105", "05", "11"), HorseID: "H1"}}

	assert.Empty(t, JoinEntries(nil, results, testLogger()))
	assert.Empty(t, JoinEntries(races, nil, testLogger()))
}

func TestJoinEntriesIncompleteKeySkipped(t *testing.T) {
	races := []models.RaceRecord{
		{Key: models.RaceKey{Year: "2023", MonthDay: "0105", VenueCode: "", RaceNumber: "11"}},
		{Key: raceKey("0105", "05", "11"), FieldSize: 12},
	}
	results := []models.ResultEntry{
		{Key: models.RaceKey{Year: "", MonthDay: "0105", VenueCode: "05", RaceNumber: "11"}, HorseID: "H1"},
		{Key: raceKey("0105", "05", "11"), HorseID: "H2"},
	}

	entries := JoinEntries(races, results, testLogger())
	require.Len(t, entries, 1)
	assert.Equal(t, "H2", entries[0].HorseID)
}

func TestJoinEntriesCoercesInvalidNumericsToMissing(t *testing.T) {
	races := []models.RaceRecord{{Key: raceKey("0105", "05", "11"), FieldSize: 16}}
	results := []models.ResultEntry{
		{
			Key:             raceKey("0105", "05", "11"),
			HorseID:         "H1",
			FinishPosition:  "  ",
			Odds:            "****",
			PopularityRank:  "xx",
			CornerPositions: [4]string{"", "01", "bad", "04"},
		},
	}

	entries := JoinEntries(races, results, testLogger())
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Nil(t, e.FinishPosition)
	assert.Nil(t, e.OddsTenths)
	assert.Nil(t, e.PopularityRank)
	assert.Nil(t, e.CornerPositions[0])
	assert.Nil(t, e.CornerPositions[2])
	require.NotNil(t, e.CornerPositions[3])
	assert.Equal(t, 4, *e.CornerPositions[3])
}

func TestJoinEntriesBatchBoundariesDoNotMatter(t *testing.T) {
	races := []models.RaceRecord{
		{Key: raceKey("0105", "05", "11"), FieldSize: 16},
		{Key: raceKey("0106", "06", "01"), FieldSize: 12},
	}
	batch1 := []models.ResultEntry{{Key: raceKey("0105", "05", "11"), HorseID: "H1", FinishPosition: "01"}}
	batch2 := []models.ResultEntry{{Key: raceKey("0106", "06", "01"), HorseID: "H1", FinishPosition: "03"}}

	whole := JoinEntries(races, append(append([]models.ResultEntry{}, batch1...), batch2...), testLogger())
	parts := append(JoinEntries(races, batch1, testLogger()), JoinEntries(races, batch2, testLogger())...)
	assert.Equal(t, whole, parts)
}
