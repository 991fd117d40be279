package database

import (
	"context"
	"fmt"
)

// mirrorTables are the JV-Data tables the pipeline reads.
var mirrorTables = []string{"jvd_ra", "jvd_se", "jvd_um"}

// VerifyMirror checks that the connected database actually holds a JV-Data
// mirror by probing for the tables the pipeline depends on.
func (db *DB) VerifyMirror(ctx context.Context) error {
	for _, table := range mirrorTables {
		var exists bool
		err := db.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)",
			table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to probe for table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s not found: the configured database is not a JV-Data mirror", table)
		}
	}
	return nil
}
