package db

import (
	"fmt"

	"gorm.io/gorm"
)

// PlateKeyFunction mirrors normalize.PlateKey in SQL. Plate-scoped reads filter
// on it so the expression indexes below can serve them.
const PlateKeyFunction = "fleet_plate_key"

const plateKeyExpr = `upper(regexp_replace(%s, '[^A-Za-z0-9]', '', 'g'))`

// PlateColumns are the plate columns in the order ingest ranks them.
var PlateColumns = []string{"Placa", "PlacaVeiculo", "placa", "plate"}

var baseStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_proc WHERE proname = '` + PlateKeyFunction + `') THEN
			CREATE FUNCTION ` + PlateKeyFunction + `(raw text) RETURNS text
			LANGUAGE sql IMMUTABLE AS
			$fn$ SELECT ` + fmt.Sprintf(plateKeyExpr, "raw") + ` $fn$;
		END IF;
	END
	$$;`,
}

// migrationStatements adds a plate key expression index to every fact table
// that exists and carries a recognised plate column. Missing tables are skipped.
func migrationStatements(tables []string) ([]string, error) {
	stmts := append([]string(nil), baseStatements...)
	for _, table := range tables {
		if !ValidIdentifier(table) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
		for _, column := range PlateColumns {
			stmts = append(stmts, fmt.Sprintf(`DO $$
	BEGIN
		IF EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = '%[1]s' AND column_name = '%[2]s'
		) THEN
			CREATE INDEX IF NOT EXISTS "idx_%[1]s_%[2]s_key" ON %[1]q (%[3]s(%[2]q::text));
		END IF;
	END
	$$;`, table, column, PlateKeyFunction))
		}
	}
	return stmts, nil
}

func runMigrations(db *gorm.DB, tables []string) error {
	stmts, err := migrationStatements(tables)
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
