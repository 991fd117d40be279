// Package service orchestrates extraction and feature generation runs.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/hironyan25/jra-keiba-analysis/internal/config"
	"github.com/hironyan25/jra-keiba-analysis/internal/features"
	"github.com/hironyan25/jra-keiba-analysis/internal/logger"
	"github.com/hironyan25/jra-keiba-analysis/internal/metrics"
	"github.com/hironyan25/jra-keiba-analysis/internal/models"
	"github.com/hironyan25/jra-keiba-analysis/internal/repository"
)

// FeatureService runs the feature pipeline against the JV-Data mirror:
// extract race and result records, join and classify them, then build the
// pattern and ROI feature tables.
type FeatureService struct {
	raceRepo     repository.RaceRecordRepository
	resultRepo   repository.ResultEntryRepository
	pedigreeRepo repository.PedigreeRepository
	extraction   config.ExtractionConfig
	thresholds   config.FeaturesConfig
	limiter      *rate.Limiter
	logger       *logrus.Logger
	plog         *logger.PipelineLogger
}

// RunResult holds everything one pipeline run produced
type RunResult struct {
	RunID        string
	Entries      []models.Entry
	Patterns     []models.PatternStat
	SireTrack    []models.ROIStat
	JockeyCourse []models.ROIStat
	HorseCourse  []models.ROIStat
	Duration     time.Duration
}

// NewFeatureService creates a new feature service
func NewFeatureService(
	raceRepo repository.RaceRecordRepository,
	resultRepo repository.ResultEntryRepository,
	pedigreeRepo repository.PedigreeRepository,
	extraction config.ExtractionConfig,
	thresholds config.FeaturesConfig,
	baseLogger *logrus.Logger,
) *FeatureService {
	limit := extraction.RateLimitPerSecond
	if limit <= 0 {
		limit = 1
	}
	return &FeatureService{
		raceRepo:     raceRepo,
		resultRepo:   resultRepo,
		pedigreeRepo: pedigreeRepo,
		extraction:   extraction,
		thresholds:   thresholds,
		limiter:      rate.NewLimiter(rate.Limit(limit), 1),
		logger:       baseLogger,
		plog:         logger.NewPipelineLogger(baseLogger),
	}
}

// Extract reads race and result records year by year from the mirror.
// Each yearly batch waits on the rate limiter so long backfills do not
// saturate the shared database.
func (s *FeatureService) Extract(ctx context.Context) ([]models.RaceRecord, []models.ResultEntry, error) {
	start := time.Now()

	var (
		races   []models.RaceRecord
		results []models.ResultEntry
	)

	for year := s.extraction.YearFrom; year <= s.extraction.YearTo; year++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}

		yearRaces, err := s.raceRepo.ListByYear(ctx, year)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract races for %d: %w", year, err)
		}
		yearResults, err := s.resultRepo.ListByYear(ctx, year)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract results for %d: %w", year, err)
		}

		s.logger.WithFields(logrus.Fields{
			"year":    year,
			"races":   len(yearRaces),
			"results": len(yearResults),
		}).Debug("Extracted yearly batch")

		races = append(races, yearRaces...)
		results = append(results, yearResults...)
	}

	elapsed := time.Since(start)
	metrics.RecordExtraction(len(races), len(results))
	metrics.RecordStageDuration("extract", elapsed.Seconds())
	s.plog.LogExtractionComplete(s.extraction.YearFrom, s.extraction.YearTo,
		len(races), len(results), float64(elapsed.Milliseconds()))

	return races, results, nil
}

// BuildPaceFeatures extracts records and runs the pace pipeline, returning
// joined, classified entries and the pattern score table.
func (s *FeatureService) BuildPaceFeatures(ctx context.Context) ([]models.Entry, []models.PatternStat, error) {
	races, results, err := s.Extract(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(races) == 0 {
		return nil, nil, fmt.Errorf("no races between %d and %d: %w",
			s.extraction.YearFrom, s.extraction.YearTo, models.ErrEmptyInput)
	}

	start := time.Now()
	entries := features.PaceFeatures(races, results, s.logger)
	metrics.RecordJoin(len(entries), len(results)-len(entries))
	metrics.RecordCoercionFailures(countMissingNumerics(entries))
	metrics.RecordStageDuration("pace", time.Since(start).Seconds())
	s.plog.LogJoinComplete(len(entries), len(results)-len(entries))

	patterns := features.ScorePatterns(entries)

	return entries, patterns, nil
}

// BuildROIFeatures runs the three ROI groupers over classified entries.
// Pedigree data is looked up for the distinct horses appearing in entries.
func (s *FeatureService) BuildROIFeatures(ctx context.Context, entries []models.Entry) (sireTrack, jockeyCourse, horseCourse []models.ROIStat, err error) {
	start := time.Now()

	pedigrees, err := s.lookupPedigrees(ctx, entries)
	if err != nil {
		return nil, nil, nil, err
	}

	sireTrack = features.SireTrackROI(entries, pedigrees, s.thresholds.MinSireRaces)
	jockeyCourse = features.JockeyCourseROI(entries, s.thresholds.MinJockeyRides)
	horseCourse = features.HorseCourseROI(entries, s.thresholds.MinHorseRaces)

	metrics.RecordStageDuration("roi", time.Since(start).Seconds())

	return sireTrack, jockeyCourse, horseCourse, nil
}

// Run executes the full pipeline: pace features followed by all three ROI
// tables, tagged with a fresh run id.
func (s *FeatureService) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()
	start := time.Now()

	s.logger.WithField("run_id", runID).Info("Starting pipeline run")

	entries, patterns, err := s.BuildPaceFeatures(ctx)
	if err != nil {
		metrics.RecordRunOutcome("failure")
		return nil, err
	}

	sireTrack, jockeyCourse, horseCourse, err := s.BuildROIFeatures(ctx, entries)
	if err != nil {
		metrics.RecordRunOutcome("failure")
		return nil, err
	}

	result := &RunResult{
		RunID:        runID,
		Entries:      entries,
		Patterns:     patterns,
		SireTrack:    sireTrack,
		JockeyCourse: jockeyCourse,
		HorseCourse:  horseCourse,
		Duration:     time.Since(start),
	}

	metrics.RecordRunOutcome("success")
	s.plog.LogFeatureTables(len(patterns), len(sireTrack), len(jockeyCourse), len(horseCourse))
	s.plog.LogRunComplete(runID, len(entries), float64(result.Duration.Milliseconds()))

	return result, nil
}

// countMissingNumerics counts the result columns that coerced to the missing
// marker. Corner positions are excluded: races with fewer than four corners
// legitimately leave them blank.
func countMissingNumerics(entries []models.Entry) int {
	missing := 0
	for i := range entries {
		e := &entries[i]
		if e.FinishPosition == nil {
			missing++
		}
		if e.OddsTenths == nil {
			missing++
		}
		if e.PopularityRank == nil {
			missing++
		}
	}
	return missing
}

// lookupPedigrees fetches pedigree records for the distinct horses in entries
func (s *FeatureService) lookupPedigrees(ctx context.Context, entries []models.Entry) (map[string]models.PedigreeRecord, error) {
	seen := make(map[string]struct{}, len(entries))
	var ids []string
	for _, e := range entries {
		if _, ok := seen[e.HorseID]; ok {
			continue
		}
		seen[e.HorseID] = struct{}{}
		ids = append(ids, e.HorseID)
	}

	pedigrees, err := s.pedigreeRepo.GetByHorseIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pedigrees: %w", err)
	}

	if cached, ok := s.pedigreeRepo.(*repository.CachedPedigreeRepository); ok {
		metrics.UpdatePedigreeCacheSize(cached.ItemCount())
	}

	return pedigrees, nil
}
