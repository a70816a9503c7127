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

// RegistrationRepository defines the event registration collection operations.
type RegistrationRepository interface {
	// CreateRegistration fails with ErrDuplicateKey for an existing (event, email) pair.
	CreateRegistration(ctx context.Context, reg *models.EventRegistration) error
	IsRegistered(ctx context.Context, eventID primitive.ObjectID, email string) (bool, error)
	CountRegistrationsForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
	GetRegistrationsByEmail(ctx context.Context, email string) ([]models.EventRegistration, error)
	CountRegistrations(ctx context.Context) (int64, error)
}

type registrationRepository struct {
	collection
}

// NewRegistrationRepository creates a new instance of RegistrationRepository.
func NewRegistrationRepository(db *database.DB) RegistrationRepository {
	return &registrationRepository{collection{coll: db.Collection(database.CollEventRegistrations), timeout: db.Timeout}}
}

func (r *registrationRepository) CreateRegistration(ctx context.Context, reg *models.EventRegistration) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, reg)
	return mapError(err, "registering %s for event %s", reg.Email, reg.EventID.Hex())
}

func (r *registrationRepository) IsRegistered(ctx context.Context, eventID primitive.ObjectID, email string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"eventId": eventID, "email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, mapError(err, "checking registration of %s for event %s", email, eventID.Hex())
	}
	return n > 0, nil
}

func (r *registrationRepository) CountRegistrationsForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"eventId": eventID})
	return n, mapError(err, "counting registrations for event %s", eventID.Hex())
}

func (r *registrationRepository) GetRegistrationsByEmail(ctx context.Context, email string) ([]models.EventRegistration, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}}))
	if err != nil {
		return nil, mapError(err, "querying registrations for %s", email)
	}
	regs := []models.EventRegistration{}
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, mapError(err, "decoding registrations")
	}
	return regs, nil
}

func (r *registrationRepository) CountRegistrations(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError(err, "counting registrations")
}
