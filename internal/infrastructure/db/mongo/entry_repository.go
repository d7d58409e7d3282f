package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/efforttracker/effort-api/internal/core/domain"
)

const entryCollection = "time_entries"

// TimeEntryRepository implements ports.TimeEntryRepository using MongoDB.
// Hours and earnings are stored as decimal strings to keep fixed-point
// precision through the round trip.
type TimeEntryRepository struct {
	coll *mongo.Collection
}

func NewTimeEntryRepository(db *mongo.Database) *TimeEntryRepository {
	return &TimeEntryRepository{coll: db.Collection(entryCollection)}
}

type entryDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	TaskID      string    `bson:"task_id,omitempty"`
	Date        time.Time `bson:"date"`
	Hours       string    `bson:"hours"`
	Description string    `bson:"description"`
	Earnings    string    `bson:"earnings"`
	CreatedAt   int64     `bson:"created_at"`
	UpdatedAt   int64     `bson:"updated_at"`
}

func toEntryDoc(e *domain.TimeEntry) entryDoc {
	return entryDoc{
		ID:          e.ID,
		UserID:      e.UserID,
		TaskID:      e.TaskID,
		Date:        e.Date.UTC(),
		Hours:       e.Hours.String(),
		Description: e.Description,
		Earnings:    e.Earnings.String(),
		CreatedAt:   e.CreatedAt.Unix(),
		UpdatedAt:   e.UpdatedAt.Unix(),
	}
}

func (d entryDoc) toDomain() (*domain.TimeEntry, error) {
	hours, err := decimal.NewFromString(d.Hours)
	if err != nil {
		return nil, fmt.Errorf("decode hours %q: %w", d.Hours, err)
	}
	earnings, err := decimal.NewFromString(d.Earnings)
	if err != nil {
		return nil, fmt.Errorf("decode earnings %q: %w", d.Earnings, err)
	}
	return &domain.TimeEntry{
		ID:          d.ID,
		UserID:      d.UserID,
		TaskID:      d.TaskID,
		Date:        d.Date.UTC(),
		Hours:       hours,
		Description: d.Description,
		Earnings:    earnings,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}, nil
}

func (r *TimeEntryRepository) Insert(ctx context.Context, entry *domain.TimeEntry) error {
	if _, err := r.coll.InsertOne(ctx, toEntryDoc(entry)); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *TimeEntryRepository) InsertMany(ctx context.Context, entries []*domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, toEntryDoc(e))
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}
	return nil
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	var doc entryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return doc.toDomain()
}

func (r *TimeEntryRepository) FindByUser(ctx context.Context, userID string) ([]*domain.TimeEntry, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *TimeEntryRepository) FindByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeEntry, error) {
	return r.find(ctx, bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from.UTC(), "$lte": to.UTC()},
	})
}

func (r *TimeEntryRepository) FindInRange(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from.UTC(), "$lte": to.UTC()}})
}

func (r *TimeEntryRepository) FindByTask(ctx context.Context, taskID string) ([]*domain.TimeEntry, error) {
	return r.find(ctx, bson.M{"task_id": taskID})
}

func (r *TimeEntryRepository) find(ctx context.Context, query bson.M) ([]*domain.TimeEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.TimeEntry
	for cur.Next(ctx) {
		var doc entryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		e, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, cur.Err()
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *domain.TimeEntry) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": entry.ID}, toEntryDoc(entry))
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// UpdateMany replaces a batch of entries in one ordered bulk write. The
// service layer validates every id beforehand, so the batch either applies
// fully or fails before the first write.
func (r *TimeEntryRepository) UpdateMany(ctx context.Context, entries []*domain.TimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": e.ID}).
			SetReplacement(toEntryDoc(e)))
	}
	if _, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("bulk update entries: %w", err)
	}
	return nil
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *TimeEntryRepository) DeleteByTask(ctx context.Context, taskID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"task_id": taskID})
	if err != nil {
		return 0, fmt.Errorf("delete entries by task: %w", err)
	}
	return res.DeletedCount, nil
}
