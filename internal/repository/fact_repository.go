package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fleet-timeline-service/internal/db"
	"fleet-timeline-service/internal/model"
)

// FactRepository reads fact tables as loosely typed rows. Every table is
// selected whole through row_to_json so column naming is left to ingest.
type FactRepository struct {
	db *gorm.DB
}

type factRow struct {
	Doc datatypes.JSON `gorm:"column:doc"`
}

func NewFactRepository(db *gorm.DB) *FactRepository {
	return &FactRepository{db: db}
}

func (r *FactRepository) Collection(ctx context.Context, name string) ([]model.RawRecord, error) {
	if !db.ValidIdentifier(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	if !r.relationExists(ctx, name) {
		return []model.RawRecord{}, nil
	}

	var rows []factRow
	err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT row_to_json(t) AS doc FROM %q AS t`, name)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}
	return decodeRows(name, rows)
}

// PlateCollection reads only the rows whose plate column normalizes to
// plateKey. Tables without a known plate column, or a database where the
// plate key function was never migrated, fall back to the whole collection.
func (r *FactRepository) PlateCollection(ctx context.Context, name, plateKey string) ([]model.RawRecord, error) {
	if !db.ValidIdentifier(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	if !r.relationExists(ctx, name) {
		return []model.RawRecord{}, nil
	}

	columns := r.plateColumns(ctx, name)
	if len(columns) == 0 || !r.functionExists(ctx, db.PlateKeyFunction) {
		return r.Collection(ctx, name)
	}

	args := make([]interface{}, len(columns))
	for i := range columns {
		args[i] = plateKey
	}

	var rows []factRow
	err := r.db.WithContext(ctx).
		Raw(plateScopedQuery(name, columns), args...).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select %s for %s: %w", name, plateKey, err)
	}
	return decodeRows(name, rows)
}

func plateScopedQuery(table string, columns []string) string {
	conds := make([]string, 0, len(columns))
	for _, column := range columns {
		conds = append(conds, fmt.Sprintf(`%s(t.%q::text) = ?`, db.PlateKeyFunction, column))
	}
	return fmt.Sprintf(`SELECT row_to_json(t) AS doc FROM %q AS t WHERE %s`, table, strings.Join(conds, " OR "))
}

// plateColumns lists the known plate columns the table has, in ranking order.
func (r *FactRepository) plateColumns(ctx context.Context, table string) []string {
	var present []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = ? AND column_name IN ?`, table, db.PlateColumns).
		Scan(&present).Error
	if err != nil {
		return nil
	}
	return rankColumns(present)
}

func rankColumns(present []string) []string {
	ranked := make([]string, 0, len(present))
	for _, column := range db.PlateColumns {
		for _, p := range present {
			if p == column {
				ranked = append(ranked, column)
				break
			}
		}
	}
	return ranked
}

func (r *FactRepository) functionExists(ctx context.Context, name string) bool {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = ?)`, name).
		Scan(&exists).Error
	if err != nil {
		return false
	}
	return exists
}

func decodeRows(name string, rows []factRow) ([]model.RawRecord, error) {
	records := make([]model.RawRecord, 0, len(rows))
	for i, row := range rows {
		if len(row.Doc) == 0 {
			continue
		}
		var rec model.RawRecord
		if err := json.Unmarshal(row.Doc, &rec); err != nil {
			return nil, fmt.Errorf("decode %s row %d: %w", name, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *FactRepository) relationExists(ctx context.Context, name string) bool {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (
			SELECT 1
			FROM pg_catalog.pg_class c
			JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			WHERE c.relname = ? AND c.relkind IN ('r','m','v') AND n.nspname = 'public'
		)`, name).
		Scan(&exists).Error
	if err != nil {
		return false
	}
	return exists
}
