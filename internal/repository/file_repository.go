package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"fleet-timeline-service/internal/db"
	"fleet-timeline-service/internal/model"
)

// FileRepository serves collections from <dir>/<name>.json exports.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) Collection(ctx context.Context, name string) ([]model.RawRecord, error) {
	if !db.ValidIdentifier(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(filepath.Join(r.dir, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return []model.RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if decoded == nil {
		return []model.RawRecord{}, nil
	}
	items, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s holds %T", ErrNotCollection, name, decoded)
	}

	records := make([]model.RawRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s item %d is %T", ErrNotCollection, name, i, item)
		}
		records = append(records, model.RawRecord(obj))
	}
	return records, nil
}
