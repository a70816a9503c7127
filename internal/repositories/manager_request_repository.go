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

// ManagerRequestRepository defines the club-manager request collection operations.
type ManagerRequestRepository interface {
	CreateManagerRequest(ctx context.Context, req *models.ClubManagerRequest) error
	GetManagerRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ClubManagerRequest, error)
	GetPendingManagerRequestByEmail(ctx context.Context, email string) (*models.ClubManagerRequest, error)
	GetManagerRequests(ctx context.Context, status string) ([]models.ClubManagerRequest, error)
	// ReviewManagerRequest moves a pending request to status, ErrNotFound if it is not pending.
	ReviewManagerRequest(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time) error
}

type managerRequestRepository struct {
	collection
}

// NewManagerRequestRepository creates a new instance of ManagerRequestRepository.
func NewManagerRequestRepository(db *database.DB) ManagerRequestRepository {
	return &managerRequestRepository{collection{coll: db.Collection(database.CollClubManagerRequests), timeout: db.Timeout}}
}

func (r *managerRequestRepository) CreateManagerRequest(ctx context.Context, req *models.ClubManagerRequest) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, req)
	return mapError(err, "creating manager request for %s", req.Email)
}

func (r *managerRequestRepository) GetManagerRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ClubManagerRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var req models.ClubManagerRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, mapError(err, "getting manager request %s", id.Hex())
	}
	return &req, nil
}

func (r *managerRequestRepository) GetPendingManagerRequestByEmail(ctx context.Context, email string) (*models.ClubManagerRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var req models.ClubManagerRequest
	if err := r.coll.FindOne(ctx, bson.M{"email": email, "status": models.StatusPending}).Decode(&req); err != nil {
		return nil, mapError(err, "getting pending manager request for %s", email)
	}
	return &req, nil
}

func (r *managerRequestRepository) GetManagerRequests(ctx context.Context, status string) ([]models.ClubManagerRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapError(err, "querying manager requests")
	}
	reqs := []models.ClubManagerRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, mapError(err, "decoding manager requests")
	}
	return reqs, nil
}

func (r *managerRequestRepository) ReviewManagerRequest(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": bson.M{"status": status, "reviewedAt": reviewedAt}},
	)
	if err != nil {
		return mapError(err, "reviewing manager request %s", id.Hex())
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
