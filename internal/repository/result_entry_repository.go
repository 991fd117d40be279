package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hironyan25/jra-keiba-analysis/internal/database"
	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

const errScanResultEntry = "failed to scan result entry: %w"

const resultEntryQuery = `
	SELECT
		s.kaisai_nen, s.kaisai_tsukihi, s.keibajo_code, s.race_bango,
		s.ketto_toroku_bango, TRIM(s.bamei),
		s.wakuban, s.umaban, s.barei, s.seibetsu_code,
		s.bataiju, s.zogen_fugo, s.zogen_sa,
		s.kishu_code, TRIM(s.kishumei_ryakusho),
		s.chokyoshi_code, TRIM(s.chokyoshimei_ryakusho),
		s.kakutei_chakujun, s.soha_time, s.kohan_3f,
		s.tansho_odds, s.tansho_ninkijun,
		s.corner_01_tsuka_juni, s.corner_02_tsuka_juni,
		s.corner_03_tsuka_juni, s.corner_04_tsuka_juni
	FROM jvd_se s
	WHERE s.kaisai_nen BETWEEN $1 AND $2
	ORDER BY s.kaisai_nen, s.kaisai_tsukihi, s.keibajo_code, s.race_bango, s.umaban
`

// PostgresResultEntryRepository implements ResultEntryRepository for the mirror
type PostgresResultEntryRepository struct {
	db *database.DB
}

// NewPostgresResultEntryRepository creates a new result entry repository
func NewPostgresResultEntryRepository(db *database.DB) ResultEntryRepository {
	return &PostgresResultEntryRepository{db: db}
}

// ListByYear retrieves result entries for a single year
func (r *PostgresResultEntryRepository) ListByYear(ctx context.Context, year int) ([]models.ResultEntry, error) {
	return r.ListByYearRange(ctx, year, year)
}

// ListByYearRange retrieves result entries between two years inclusive,
// ordered by race key and horse number
func (r *PostgresResultEntryRepository) ListByYearRange(ctx context.Context, yearFrom, yearTo int) ([]models.ResultEntry, error) {
	rows, err := r.db.GetPool().Query(ctx, resultEntryQuery,
		strconv.Itoa(yearFrom), strconv.Itoa(yearTo))
	if err != nil {
		return nil, fmt.Errorf("failed to query result entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ResultEntry
	for rows.Next() {
		var (
			entry        models.ResultEntry
			postPosition string
			horseNumber  string
			age          string
			weight       string
			weightChange string
		)
		err := rows.Scan(
			&entry.Key.Year, &entry.Key.MonthDay, &entry.Key.VenueCode, &entry.Key.RaceNumber,
			&entry.HorseID, &entry.HorseName,
			&postPosition, &horseNumber, &age, &entry.SexCode,
			&weight, &entry.WeightChangeSign, &weightChange,
			&entry.JockeyID, &entry.JockeyName,
			&entry.TrainerID, &entry.TrainerName,
			&entry.FinishPosition, &entry.Time, &entry.Last3FTime,
			&entry.Odds, &entry.PopularityRank,
			&entry.CornerPositions[0], &entry.CornerPositions[1],
			&entry.CornerPositions[2], &entry.CornerPositions[3],
		)
		if err != nil {
			return nil, fmt.Errorf(errScanResultEntry, err)
		}
		entry.PostPosition = models.IntValue(models.CoerceInt(postPosition), 0)
		entry.HorseNumber = models.IntValue(models.CoerceInt(horseNumber), 0)
		entry.Age = models.IntValue(models.CoerceInt(age), 0)
		entry.Weight = models.IntValue(models.CoerceInt(weight), 0)
		entry.WeightChange = models.IntValue(models.CoerceInt(weightChange), 0)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
