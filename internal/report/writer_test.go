package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

func samplePatterns() []models.PatternStat {
	return []models.PatternStat{
		{
			Pattern:            models.PatternDisadvantagedStrong,
			RaceCount:          25,
			WinCount:           4,
			WinOddsSum:         decimal.RequireFromString("10.5"),
			ROI:                decimal.RequireFromString("42"),
			WinRate:            16,
			OverPopularityRate: 40,
		},
	}
}

func sampleROI() []models.ROIStat {
	return []models.ROIStat{
		{
			JockeyID:     "J1",
			JockeyName:   "Rider, The",
			CourseName:   "Tokyo",
			DistanceBand: models.DistanceMiddle,
			Count:        10,
			WinCount:     2,
			WinOddsSum:   decimal.RequireFromString("16"),
			ROI:          decimal.RequireFromString("160"),
			AvgWinOdds:   decimal.RequireFromString("8"),
		},
	}
}

func TestWritePatternsBothFormats(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "both")

	if err := w.WritePatterns("pace_patterns", samplePatterns()); err != nil {
		t.Fatalf("WritePatterns: %v", err)
	}

	csvData, err := os.ReadFile(filepath.Join(dir, "pace_patterns.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(csvData), "disadvantaged_to_strong_run,25,4") {
		t.Errorf("csv missing pattern row: %q", string(csvData))
	}

	jsonData, err := os.ReadFile(filepath.Join(dir, "pace_patterns.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !strings.Contains(string(jsonData), `"race_count": 25`) {
		t.Errorf("json missing race count: %q", string(jsonData))
	}
}

func TestWriteROIQuotesNamesWithCommas(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "csv")

	if err := w.WriteROI("jockey_course_roi", sampleROI()); err != nil {
		t.Fatalf("WriteROI: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "jockey_course_roi.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(data), `"Rider, The"`) {
		t.Errorf("expected quoted jockey name, got %q", string(data))
	}
	if strings.Contains(string(data), ".json") {
		t.Errorf("csv-only writer produced json reference")
	}
	if _, err := os.Stat(filepath.Join(dir, "jockey_course_roi.json")); !os.IsNotExist(err) {
		t.Errorf("csv-only writer must not write json")
	}
}

func TestWriterCreatesMissingDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir, "json")

	if err := w.WriteROI("sire_track_roi", sampleROI()); err != nil {
		t.Fatalf("WriteROI: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sire_track_roi.json")); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}
