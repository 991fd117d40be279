package repository

import (
	"context"
	"fmt"

	"github.com/hironyan25/jra-keiba-analysis/internal/database"
	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

const errScanPedigree = "failed to scan pedigree record: %w"

const pedigreeQuery = `
	SELECT
		u.ketto_toroku_bango,
		TRIM(u.bamei),
		u.seinengappi,
		u.seibetsu_code,
		u.ketto_joho_01a, TRIM(u.ketto_joho_01b),
		u.ketto_joho_02a, TRIM(u.ketto_joho_02b),
		u.ketto_joho_03a, TRIM(u.ketto_joho_03b)
	FROM jvd_um u
	WHERE u.ketto_toroku_bango = ANY($1)
`

// PostgresPedigreeRepository implements PedigreeRepository for the mirror
type PostgresPedigreeRepository struct {
	db        *database.DB
	chunkSize int
}

// NewPostgresPedigreeRepository creates a new pedigree repository. Lookups
// are split into chunks of chunkSize ids to keep parameter lists bounded.
func NewPostgresPedigreeRepository(db *database.DB, chunkSize int) PedigreeRepository {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &PostgresPedigreeRepository{db: db, chunkSize: chunkSize}
}

// GetByHorseIDs retrieves pedigree records for the given horse id set,
// keyed by horse id. Ids without a record are simply absent from the result.
func (r *PostgresPedigreeRepository) GetByHorseIDs(ctx context.Context, horseIDs []string) (map[string]models.PedigreeRecord, error) {
	records := make(map[string]models.PedigreeRecord, len(horseIDs))

	for start := 0; start < len(horseIDs); start += r.chunkSize {
		end := start + r.chunkSize
		if end > len(horseIDs) {
			end = len(horseIDs)
		}
		if err := r.fetchChunk(ctx, horseIDs[start:end], records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (r *PostgresPedigreeRepository) fetchChunk(ctx context.Context, ids []string, into map[string]models.PedigreeRecord) error {
	rows, err := r.db.GetPool().Query(ctx, pedigreeQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to query pedigree records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.PedigreeRecord
		err := rows.Scan(
			&rec.HorseID, &rec.HorseName, &rec.BirthDate, &rec.SexCode,
			&rec.SireID, &rec.SireName,
			&rec.DamID, &rec.DamName,
			&rec.BroodmareSireID, &rec.BroodmareSireName,
		)
		if err != nil {
			return fmt.Errorf(errScanPedigree, err)
		}
		into[rec.HorseID] = rec
	}

	return rows.Err()
}
