// Package scheduler runs periodic feature pipeline jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/hironyan25/jra-keiba-analysis/internal/report"
	"github.com/hironyan25/jra-keiba-analysis/internal/service"
)

// Scheduler manages scheduled pipeline runs. Typically one nightly run
// rebuilds every feature table after the mirror has been refreshed.
type Scheduler struct {
	cron       *cron.Cron
	featureSvc *service.FeatureService
	writer     *report.Writer
	logger     *logrus.Logger
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(featureSvc *service.FeatureService, writer *report.Writer, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		featureSvc: featureSvc,
		writer:     writer,
		logger:     logger,
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: 4 * time.Hour,
	}
}

// SchedulePipelineRun schedules a full pipeline run on a cron expression
func (s *Scheduler) SchedulePipelineRun(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		s.logger.Info("Starting scheduled pipeline run")

		result, err := s.featureSvc.Run(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled pipeline run failed")
			return
		}

		if err := s.writeTables(result); err != nil {
			s.logger.WithError(err).Error("Failed to write feature tables")
			return
		}

		s.logger.WithFields(logrus.Fields{
			"run_id":   result.RunID,
			"duration": result.Duration,
		}).Info("Scheduled pipeline run completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled pipeline run job")

	return nil
}

func (s *Scheduler) writeTables(result *service.RunResult) error {
	if err := s.writer.WritePatterns("pace_patterns", result.Patterns); err != nil {
		return err
	}
	if err := s.writer.WriteROI("sire_track_roi", result.SireTrack); err != nil {
		return err
	}
	if err := s.writer.WriteROI("jockey_course_roi", result.JockeyCourse); err != nil {
		return err
	}
	return s.writer.WriteROI("horse_course_roi", result.HorseCourse)
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}
