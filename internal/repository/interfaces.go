// Package repository provides read access to the JV-Data PostgreSQL mirror.
package repository

import (
	"context"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// RaceRecordRepository defines read access to race base information (jvd_ra)
type RaceRecordRepository interface {
	ListByYear(ctx context.Context, year int) ([]models.RaceRecord, error)
	ListByYearRange(ctx context.Context, yearFrom, yearTo int) ([]models.RaceRecord, error)
}

// ResultEntryRepository defines read access to per-horse race results (jvd_se)
type ResultEntryRepository interface {
	ListByYear(ctx context.Context, year int) ([]models.ResultEntry, error)
	ListByYearRange(ctx context.Context, yearFrom, yearTo int) ([]models.ResultEntry, error)
}

// PedigreeRepository defines lookup of static pedigree reference data (jvd_um)
type PedigreeRepository interface {
	GetByHorseIDs(ctx context.Context, horseIDs []string) (map[string]models.PedigreeRecord, error)
}
