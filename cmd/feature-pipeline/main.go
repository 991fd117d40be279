package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hironyan25/jra-keiba-analysis/internal/config"
	"github.com/hironyan25/jra-keiba-analysis/internal/database"
	"github.com/hironyan25/jra-keiba-analysis/internal/health"
	"github.com/hironyan25/jra-keiba-analysis/internal/logger"
	"github.com/hironyan25/jra-keiba-analysis/internal/metrics"
	"github.com/hironyan25/jra-keiba-analysis/internal/report"
	"github.com/hironyan25/jra-keiba-analysis/internal/repository"
	"github.com/hironyan25/jra-keiba-analysis/internal/scheduler"
	"github.com/hironyan25/jra-keiba-analysis/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile    string
	secretsRegion string
	secretsName   string
	cronExpr      string
	healthPort    int

	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	featureSvc *service.FeatureService
	writer     *report.Writer
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&secretsRegion, "secrets-region", "", "AWS region of the secrets manager overlay")
	rootCmd.PersistentFlags().StringVar(&secretsName, "secrets-name", "", "AWS Secrets Manager secret holding database credentials")

	scheduleCmd.Flags().StringVar(&cronExpr, "cron", "0 3 * * *", "Cron expression for scheduled runs (UTC)")
	scheduleCmd.Flags().IntVar(&healthPort, "health-port", 8080, "Port for the health check server")

	rootCmd.AddCommand(paceCmd)
	rootCmd.AddCommand(roiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "feature-pipeline",
	Short: "Generate pace and ROI feature tables from the JV-Data mirror",
	Long: `Reads race and result records from a PostgreSQL JV-Data mirror,
classifies running styles and race pace, and aggregates pattern and
ROI feature tables for sires, jockeys and repeat course winners.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := setup(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("feature-pipeline %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

var paceCmd = &cobra.Command{
	Use:   "pace",
	Short: "Build the pace pattern table only",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, patterns, err := featureSvc.BuildPaceFeatures(ctx)
		if err != nil {
			return err
		}
		if err := writer.WritePatterns("pace_patterns", patterns); err != nil {
			return err
		}

		fmt.Printf("Wrote %d pattern rows to %s\n", len(patterns), cfg.Output.Dir)
		return nil
	},
}

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Build the three ROI tables only",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		entries, _, err := featureSvc.BuildPaceFeatures(ctx)
		if err != nil {
			return err
		}
		sireTrack, jockeyCourse, horseCourse, err := featureSvc.BuildROIFeatures(ctx, entries)
		if err != nil {
			return err
		}

		if err := writer.WriteROI("sire_track_roi", sireTrack); err != nil {
			return err
		}
		if err := writer.WriteROI("jockey_course_roi", jockeyCourse); err != nil {
			return err
		}
		if err := writer.WriteROI("horse_course_roi", horseCourse); err != nil {
			return err
		}

		fmt.Printf("Wrote %d sire, %d jockey and %d horse ROI rows to %s\n",
			len(sireTrack), len(jockeyCourse), len(horseCourse), cfg.Output.Dir)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and write every feature table",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := featureSvc.Run(cmd.Context())
		if err != nil {
			return err
		}

		if err := writer.WritePatterns("pace_patterns", result.Patterns); err != nil {
			return err
		}
		if err := writer.WriteROI("sire_track_roi", result.SireTrack); err != nil {
			return err
		}
		if err := writer.WriteROI("jockey_course_roi", result.JockeyCourse); err != nil {
			return err
		}
		if err := writer.WriteROI("horse_course_roi", result.HorseCourse); err != nil {
			return err
		}

		fmt.Println("=== Feature Pipeline Report ===")
		fmt.Printf("Run ID: %s\n", result.RunID)
		fmt.Printf("Entries: %d\n", len(result.Entries))
		fmt.Printf("Patterns: %d\n", len(result.Patterns))
		fmt.Printf("Sire/track rows: %d\n", len(result.SireTrack))
		fmt.Printf("Jockey/course rows: %d\n", len(result.JockeyCourse))
		fmt.Printf("Horse/course rows: %d\n", len(result.HorseCourse))
		fmt.Printf("Duration: %v\n", result.Duration)
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		healthSrv := health.NewServer("feature-pipeline", Version, healthPort, db, appLogger)
		healthSrv.Start(ctx)

		sched := scheduler.NewScheduler(featureSvc, writer, appLogger)
		if err := sched.SchedulePipelineRun(cronExpr); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		healthSrv.SetReady(true)

		appLogger.WithField("next_run", sched.GetNextRun()).Info("Scheduler waiting")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		appLogger.Info("Shutting down scheduler")
		healthSrv.SetReady(false)
		return sched.Stop()
	},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if secretsRegion != "" && secretsName != "" {
		if err := config.LoadSecretsFromAWS(cfg, secretsRegion, secretsName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.VerifyMirror(ctx); err != nil {
		db.Close()
		return err
	}

	raceRepo := repository.NewPostgresRaceRecordRepository(db)
	resultRepo := repository.NewPostgresResultEntryRepository(db)
	pedigreeRepo := repository.NewCachedPedigreeRepository(
		repository.NewPostgresPedigreeRepository(db, cfg.Extraction.PedigreeChunkSize),
		time.Duration(cfg.Extraction.PedigreeCacheTTL)*time.Second,
	)

	featureSvc = service.NewFeatureService(
		raceRepo, resultRepo, pedigreeRepo,
		cfg.Extraction, cfg.Features, appLogger,
	)
	writer = report.NewWriter(cfg.Output.Dir, cfg.Output.Format)

	if cfg.Metrics.Enabled {
		startMetricsServer()
	}

	return nil
}

func startMetricsServer() {
	metrics.InitRegistry()
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		appLogger.WithField("addr", addr).Info("Metrics server listening")
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Warn("Metrics server stopped")
		}
	}()
}
