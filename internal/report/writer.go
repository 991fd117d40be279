// Package report writes the generated feature tables to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// Writer persists feature tables in the configured formats under a base
// directory. Format is "csv", "json" or "both".
type Writer struct {
	dir    string
	format string
}

// NewWriter creates a report writer rooted at dir
func NewWriter(dir, format string) *Writer {
	return &Writer{dir: dir, format: format}
}

// WritePatterns writes the pattern score table as <name>.csv / <name>.json
func (w *Writer) WritePatterns(name string, stats []models.PatternStat) error {
	if w.wantCSV() {
		if err := w.writeFile(name+".csv", patternsCSV(stats)); err != nil {
			return err
		}
	}
	if w.wantJSON() {
		if err := w.writeJSON(name+".json", stats); err != nil {
			return err
		}
	}
	return nil
}

// WriteROI writes one ROI table as <name>.csv / <name>.json
func (w *Writer) WriteROI(name string, stats []models.ROIStat) error {
	if w.wantCSV() {
		if err := w.writeFile(name+".csv", roiCSV(stats)); err != nil {
			return err
		}
	}
	if w.wantJSON() {
		if err := w.writeJSON(name+".json", stats); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) wantCSV() bool  { return w.format == "csv" || w.format == "both" }
func (w *Writer) wantJSON() bool { return w.format == "json" || w.format == "both" }

func (w *Writer) writeFile(name, content string) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Writer) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return w.writeFile(name, string(data)+"\n")
}

func patternsCSV(stats []models.PatternStat) string {
	var builder strings.Builder
	builder.WriteString("pattern,race_count,win_count,top3_count,over_popularity_count,win_odds_sum,avg_popularity,win_rate,top3_rate,over_popularity_rate,roi,score\n")
	for _, s := range stats {
		builder.WriteString(fmt.Sprintf("%s,%d,%d,%d,%d,%s,%.4f,%.4f,%.4f,%.4f,%s,%.4f\n",
			s.Pattern, s.RaceCount, s.WinCount, s.Top3Count, s.OverPopularityCount,
			s.WinOddsSum.String(), s.AvgPopularity, s.WinRate, s.Top3Rate,
			s.OverPopularityRate, s.ROI.String(), s.Score))
	}
	return builder.String()
}

func roiCSV(stats []models.ROIStat) string {
	var builder strings.Builder
	builder.WriteString("sire_id,sire_name,jockey_id,jockey_name,horse_id,horse_name,course_name,track_type,track_condition,distance_band,count,win_count,win_odds_sum,avg_popularity,win_rate,roi,avg_win_odds,repeater_level\n")
	for _, s := range stats {
		builder.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%d,%d,%s,%.4f,%.4f,%s,%s,%s\n",
			s.SireID, csvField(s.SireName), s.JockeyID, csvField(s.JockeyName),
			s.HorseID, csvField(s.HorseName),
			s.CourseName, s.TrackType, s.TrackCondition, s.DistanceBand,
			s.Count, s.WinCount, s.WinOddsSum.String(), s.AvgPopularity,
			s.WinRate, s.ROI.String(), s.AvgWinOdds.String(), s.RepeaterLevel))
	}
	return builder.String()
}

// csvField quotes names that could contain a comma
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
