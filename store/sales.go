package store

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"backend/models"
)

// ErrNotFound is returned by FindByID when no record matches the id.
var ErrNotFound = errors.New("transaction not found")

// SalesStore wraps the sales collection. It is constructed once in main and
// handed to whoever needs it; there is no package-level collection handle.
type SalesStore struct {
	col *mongo.Collection
	log *zap.Logger
}

func NewSalesStore(col *mongo.Collection, log *zap.Logger) *SalesStore {
	return &SalesStore{col: col, log: log}
}

// Find returns one sorted page of transactions matching the filter.
func (s *SalesStore) Find(ctx context.Context, filter bson.M, sortSpec bson.D, skip, limit int64) ([]models.Transaction, error) {
	opts := options.Find().SetSort(sortSpec).SetSkip(skip).SetLimit(limit)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Transaction
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SalesStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.col.CountDocuments(ctx, filter)
}

// Distinct returns the sorted non-empty string values of a field across the
// whole collection.
func (s *SalesStore) Distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := s.col.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			values = append(values, str)
		}
	}
	sort.Strings(values)
	return values, nil
}

// AgeRange returns the observed min and max customer age. An empty
// collection reports the 0..100 default the frontend slider expects.
func (s *SalesStore) AgeRange(ctx context.Context) (models.AgeRange, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "minAge", Value: bson.D{{Key: "$min", Value: "$age"}}},
			{Key: "maxAge", Value: bson.D{{Key: "$max", Value: "$age"}}},
		}}},
	}

	var results []models.AgeRange
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return models.AgeRange{}, err
	}
	if len(results) == 0 {
		return models.AgeRange{Min: 0, Max: 100}, nil
	}
	return results[0], nil
}

// Stats aggregates the whole collection into the dashboard summary numbers.
func (s *SalesStore) Stats(ctx context.Context) (models.Stats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalTransactions", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$finalAmount"}}},
			{Key: "averageOrderValue", Value: bson.D{{Key: "$avg", Value: "$finalAmount"}}},
			{Key: "totalQuantitySold", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
	}

	var results []models.Stats
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return models.Stats{}, err
	}
	if len(results) == 0 {
		return models.Stats{}, nil
	}
	return results[0], nil
}

// FindByID looks a transaction up by its hex ObjectID. A malformed id is
// treated the same as an id that matches nothing.
func (s *SalesStore) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var tx models.Transaction
	err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// InsertMany writes a batch with unordered semantics: records that fail
// (duplicate keys and the like) are logged and skipped while the rest of the
// batch still lands. The returned count is what was actually inserted.
func (s *SalesStore) InsertMany(ctx context.Context, records []models.Transaction) (int, error) {
	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}

	res, err := s.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}

	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			for _, we := range bwe.WriteErrors {
				s.log.Warn("record rejected during batch insert",
					zap.Int("index", we.Index),
					zap.String("error", we.Message))
			}
			return inserted, nil
		}
		return inserted, err
	}
	return inserted, nil
}

func (s *SalesStore) aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}
