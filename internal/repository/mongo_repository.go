package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-timeline-service/internal/model"
)

// MongoRepository reads fact collections from one database. Documents are
// flattened into plain Go values before they reach ingest.
type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

func (r *MongoRepository) Collection(ctx context.Context, name string) ([]model.RawRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidCollection)
	}

	cursor, err := r.db.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	records := make([]model.RawRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, documentRecord(doc))
	}
	return records, nil
}

func documentRecord(doc bson.M) model.RawRecord {
	rec := make(model.RawRecord, len(doc))
	for k, v := range doc {
		rec[k] = plainValue(v)
	}
	return rec
}

func plainValue(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time()
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0)
	case primitive.ObjectID:
		return val.Hex()
	case primitive.Decimal128:
		return val.String()
	case primitive.Binary:
		return val.Data
	case primitive.Null, primitive.Undefined:
		return nil
	case bson.M:
		return map[string]any(documentRecord(val))
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
