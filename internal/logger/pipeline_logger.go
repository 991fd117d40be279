// Package logger provides pipeline-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PipelineLogger provides dedicated logging for feature pipeline runs.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogExtractionComplete logs the outcome of the extraction stage.
func (pl *PipelineLogger) LogExtractionComplete(yearFrom, yearTo, races, results int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"year_from":   yearFrom,
		"year_to":     yearTo,
		"races":       races,
		"results":     results,
		"duration_ms": durationMs,
	}).Info("Extraction completed")
}

// LogJoinComplete logs the outcome of the race/result join.
func (pl *PipelineLogger) LogJoinComplete(joined, mismatched int) {
	entry := pl.WithFields(logrus.Fields{
		"entries_joined":  joined,
		"join_mismatches": mismatched,
	})
	if mismatched > 0 {
		entry.Warn("Join completed with unmatched results")
		return
	}
	entry.Info("Join completed")
}

// LogFeatureTables logs the sizes of the generated feature tables.
func (pl *PipelineLogger) LogFeatureTables(patterns, sireTrack, jockeyCourse, horseCourse int) {
	pl.WithFields(logrus.Fields{
		"patterns":      patterns,
		"sire_track":    sireTrack,
		"jockey_course": jockeyCourse,
		"horse_course":  horseCourse,
	}).Info("Feature tables built")
}

// LogRunComplete logs a finished pipeline run.
func (pl *PipelineLogger) LogRunComplete(runID string, entries int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"run_id":      runID,
		"entries":     entries,
		"duration_ms": durationMs,
	}).Info("Pipeline run completed")
}
