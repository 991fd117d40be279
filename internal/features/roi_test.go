package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

func TestDimensionDerivations(t *testing.T) {
	assert.Equal(t, models.TrackTurf, TrackTypeOf("10"))
	assert.Equal(t, models.TrackTurf, TrackTypeOf("17"))
	assert.Equal(t, models.TrackDirt, TrackTypeOf("23"))
	assert.Equal(t, models.TrackOther, TrackTypeOf("51"))
	assert.Equal(t, models.TrackOther, TrackTypeOf(""))

	cond, ok := TrackConditionOf("1")
	require.True(t, ok)
	assert.Equal(t, "firm", cond)
	cond, ok = TrackConditionOf("0")
	require.True(t, ok)
	assert.Equal(t, "unset", cond)
	_, ok = TrackConditionOf("9")
	assert.False(t, ok)

	course, ok := CourseNameOf("05")
	require.True(t, ok)
	assert.Equal(t, "Tokyo", course)
	_, ok = CourseNameOf("42")
	assert.False(t, ok)

	band, ok := DistanceBandOf(1400)
	require.True(t, ok)
	assert.Equal(t, models.DistanceShort, band)
	band, _ = DistanceBandOf(1401)
	assert.Equal(t, models.DistanceMiddle, band)
	band, _ = DistanceBandOf(2000)
	assert.Equal(t, models.DistanceMiddle, band)
	band, _ = DistanceBandOf(2400)
	assert.Equal(t, models.DistanceLong, band)
	_, ok = DistanceBandOf(0)
	assert.False(t, ok)
}

func TestRepeaterLevelBands(t *testing.T) {
	assert.Equal(t, models.WeakRepeater, RepeaterLevelOf(0))
	assert.Equal(t, models.WeakRepeater, RepeaterLevelOf(10))
	assert.Equal(t, models.AverageRepeater, RepeaterLevelOf(10.1))
	assert.Equal(t, models.AverageRepeater, RepeaterLevelOf(15))
	assert.Equal(t, models.GoodRepeater, RepeaterLevelOf(25))
	assert.Equal(t, models.StrongRepeater, RepeaterLevelOf(25.1))
}

// Sire S with 25 starts including wins at 3.5, 5.2 and 1.8: win odds sum is
// exactly 10.5 and ROI exactly 42.
func TestSireTrackROIExactness(t *testing.T) {
	pedigrees := map[string]models.PedigreeRecord{
		"H1": {HorseID: "H1", SireID: "S1", SireName: "Deep Example"},
	}

	entries := make([]models.Entry, 0, 25)
	winOdds := []int{35, 52, 18}
	for i := 0; i < 25; i++ {
		finish := 9
		odds := 100
		if i < len(winOdds) {
			finish = 1
			odds = winOdds[i]
		}
		entries = append(entries, roiEntry("H1", "J1", "05", 1600, "10", "1", finish, odds, 4))
	}

	stats := SireTrackROI(entries, pedigrees, 20)
	require.Len(t, stats, 1)

	s := stats[0]
	assert.Equal(t, "S1", s.SireID)
	assert.Equal(t, models.TrackTurf, s.TrackType)
	assert.Equal(t, "firm", s.TrackCondition)
	assert.Equal(t, 25, s.Count)
	assert.Equal(t, 3, s.WinCount)
	assert.Equal(t, "10.5", s.WinOddsSum.String())
	assert.Equal(t, "42", s.ROI.String())
	assert.Equal(t, "3.5", s.AvgWinOdds.String())
	assert.InDelta(t, 12.0, s.WinRate, 1e-9)
}

func TestSireTrackROIFilterIsMonotonic(t *testing.T) {
	pedigrees := map[string]models.PedigreeRecord{
		"H1": {HorseID: "H1", SireID: "S1", SireName: "Deep Example"},
	}
	var entries []models.Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, roiEntry("H1", "J1", "05", 1600, "10", "1", 5, 100, 4))
	}

	prev := len(SireTrackROI(entries, pedigrees, 1))
	for _, min := range []int{10, 25, 26, 100} {
		got := len(SireTrackROI(entries, pedigrees, min))
		if got > prev {
			t.Fatalf("raising threshold to %d grew output from %d to %d", min, prev, got)
		}
		prev = got
	}
	assert.Empty(t, SireTrackROI(entries, pedigrees, 26))
}

func TestSireTrackROIExcludesUnknownPedigree(t *testing.T) {
	pedigrees := map[string]models.PedigreeRecord{
		"H1": {HorseID: "H1", SireID: "S1", SireName: "Deep Example"},
	}
	entries := []models.Entry{
		roiEntry("H1", "J1", "05", 1600, "10", "1", 1, 30, 1),
		roiEntry("H2", "J1", "05", 1600, "10", "1", 2, 50, 2), // no pedigree record
	}
	stats := SireTrackROI(entries, pedigrees, 1)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Count)
}

func TestJockeyCourseROIZeroGuardAndSort(t *testing.T) {
	var entries []models.Entry
	// J1 at Tokyo turf middle: 2 rides, 1 win at 8.0 -> roi = 8.0/2*100 = 400.
	entries = append(entries,
		roiEntry("H1", "J1", "05", 1600, "10", "1", 1, 80, 5),
		roiEntry("H2", "J1", "05", 1800, "10", "2", 4, 20, 1),
	)
	// J2 at Tokyo turf middle: 2 rides, no wins -> roi 0, avg win odds 0.
	entries = append(entries,
		roiEntry("H3", "J2", "05", 1600, "10", "1", 7, 120, 8),
		roiEntry("H4", "J2", "05", 1800, "10", "1", 9, 300, 12),
	)

	stats := JockeyCourseROI(entries, 2)
	require.Len(t, stats, 2)

	// Descending by roi.
	assert.Equal(t, "J1", stats[0].JockeyID)
	assert.Equal(t, "400", stats[0].ROI.String())
	assert.Equal(t, "J2", stats[1].JockeyID)
	assert.True(t, stats[1].ROI.IsZero())
	assert.True(t, stats[1].AvgWinOdds.IsZero())
	assert.Equal(t, "Tokyo", stats[0].CourseName)
	assert.Equal(t, models.DistanceMiddle, stats[0].DistanceBand)
}

func TestJockeyCourseROIOrderInvariantUnderInputReversal(t *testing.T) {
	var entries []models.Entry
	for i, jockey := range []string{"J1", "J2", "J3"} {
		for j := 0; j < 3; j++ {
			finish := 5
			odds := 100
			if j == 0 {
				finish = 1
				odds = 30 + i*20
			}
			entries = append(entries, roiEntry("H1", jockey, "06", 1200, "23", "2", finish, odds, 3))
		}
	}

	forward := JockeyCourseROI(entries, 1)
	reversed := make([]models.Entry, len(entries))
	for i := range entries {
		reversed[i] = entries[len(entries)-1-i]
	}
	backward := JockeyCourseROI(reversed, 1)

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		assert.True(t, forward[i].ROI.Equal(backward[i].ROI),
			"roi sequence diverged at %d: %s vs %s", i, forward[i].ROI, backward[i].ROI)
	}
}

func TestHorseCourseROIRepeaterLevels(t *testing.T) {
	var entries []models.Entry
	// H1: 4 starts, 2 wins -> win rate 50 -> strong repeater.
	for j := 0; j < 4; j++ {
		finish := 6
		odds := 100
		if j < 2 {
			finish = 1
			odds = 40
		}
		entries = append(entries, roiEntry("H1", "J1", "08", 2200, "10", "1", finish, odds, 2))
	}
	// H2: 10 starts, 1 win -> win rate 10 -> weak repeater.
	for j := 0; j < 10; j++ {
		finish := 8
		odds := 150
		if j == 0 {
			finish = 1
		}
		entries = append(entries, roiEntry("H2", "J2", "08", 2200, "10", "1", finish, odds, 6))
	}

	stats := HorseCourseROI(entries, 3)
	require.Len(t, stats, 2)

	byHorse := map[string]models.ROIStat{}
	for _, s := range stats {
		byHorse[s.HorseID] = s
	}
	assert.Equal(t, models.StrongRepeater, byHorse["H1"].RepeaterLevel)
	assert.Equal(t, models.WeakRepeater, byHorse["H2"].RepeaterLevel)
	assert.Equal(t, "Kyoto", byHorse["H1"].CourseName)
	assert.Equal(t, models.DistanceLong, byHorse["H1"].DistanceBand)
}

func TestROIGroupersExcludeUnmappedDimensions(t *testing.T) {
	entries := []models.Entry{
		roiEntry("H1", "J1", "42", 1600, "10", "1", 1, 30, 1), // regional venue
		roiEntry("H1", "J1", "05", 0, "10", "1", 1, 30, 1),    // invalid distance
	}
	assert.Empty(t, JockeyCourseROI(entries, 1))
	assert.Empty(t, HorseCourseROI(entries, 1))

	pedigrees := map[string]models.PedigreeRecord{"H1": {HorseID: "H1", SireID: "S1"}}
	badCondition := []models.Entry{roiEntry("H1", "J1", "05", 1600, "10", "9", 1, 30, 1)}
	assert.Empty(t, SireTrackROI(badCondition, pedigrees, 1))
}
