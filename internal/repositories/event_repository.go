package repositories

import (
	"context"
	"time"

	"clubsphere_backend/internal/database"
	"clubsphere_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository defines the event collection operations.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	// GetEvents lists events by date; a zero clubID lists every club.
	GetEvents(ctx context.Context, clubID primitive.ObjectID) ([]models.Event, error)
	CountEvents(ctx context.Context) (int64, error)
}

type eventRepository struct {
	collection
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *database.DB) EventRepository {
	return &eventRepository{collection{coll: db.Collection(database.CollEvents), timeout: db.Timeout}}
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, event)
	return mapError(err, "creating event %s", event.Title)
}

func (r *eventRepository) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var event models.Event
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		return nil, mapError(err, "getting event %s", id.Hex())
	}
	return &event, nil
}

func (r *eventRepository) GetEvents(ctx context.Context, clubID primitive.ObjectID) ([]models.Event, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if !clubID.IsZero() {
		filter["clubId"] = clubID
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, mapError(err, "querying events")
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, mapError(err, "decoding events")
	}
	return events, nil
}

func (r *eventRepository) CountEvents(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError(err, "counting events")
}
