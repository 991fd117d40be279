package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hironyan25/jra-keiba-analysis/internal/database"
	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

const errScanRaceRecord = "failed to scan race record: %w"

// raceRecordQuery selects race base information. The going column depends on
// the surface: turf races carry babajotai_code_shiba, everything else the
// dirt code.
const raceRecordQuery = `
	SELECT
		r.kaisai_nen, r.kaisai_tsukihi, r.keibajo_code, r.race_bango,
		r.kyori, r.track_code, r.tenko_code,
		CASE
			WHEN SUBSTRING(r.track_code, 1, 1) = '1' THEN r.babajotai_code_shiba
			ELSE r.babajotai_code_dirt
		END AS baba_jotai,
		r.shusso_tosu, r.grade_code, r.juryo_shubetsu_code
	FROM jvd_ra r
	WHERE r.kaisai_nen BETWEEN $1 AND $2
	ORDER BY r.kaisai_nen, r.kaisai_tsukihi, r.keibajo_code, r.race_bango
`

// PostgresRaceRecordRepository implements RaceRecordRepository for the mirror
type PostgresRaceRecordRepository struct {
	db *database.DB
}

// NewPostgresRaceRecordRepository creates a new race record repository
func NewPostgresRaceRecordRepository(db *database.DB) RaceRecordRepository {
	return &PostgresRaceRecordRepository{db: db}
}

// ListByYear retrieves race records for a single year
func (r *PostgresRaceRecordRepository) ListByYear(ctx context.Context, year int) ([]models.RaceRecord, error) {
	return r.ListByYearRange(ctx, year, year)
}

// ListByYearRange retrieves race records between two years inclusive,
// ordered by the race key
func (r *PostgresRaceRecordRepository) ListByYearRange(ctx context.Context, yearFrom, yearTo int) ([]models.RaceRecord, error) {
	rows, err := r.db.GetPool().Query(ctx, raceRecordQuery,
		strconv.Itoa(yearFrom), strconv.Itoa(yearTo))
	if err != nil {
		return nil, fmt.Errorf("failed to query race records: %w", err)
	}
	defer rows.Close()

	var records []models.RaceRecord
	for rows.Next() {
		var (
			rec       models.RaceRecord
			distance  string
			fieldSize string
		)
		err := rows.Scan(
			&rec.Key.Year, &rec.Key.MonthDay, &rec.Key.VenueCode, &rec.Key.RaceNumber,
			&distance, &rec.TrackSurfaceCode, &rec.WeatherCode, &rec.TrackConditionCode,
			&fieldSize, &rec.GradeCode, &rec.ClassCode,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanRaceRecord, err)
		}
		rec.Distance = models.IntValue(models.CoerceInt(distance), 0)
		rec.FieldSize = models.IntValue(models.CoerceInt(fieldSize), 0)
		records = append(records, rec)
	}

	return records, rows.Err()
}
