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

// ClubRequestRepository defines the club request collection operations.
type ClubRequestRepository interface {
	CreateClubRequest(ctx context.Context, req *models.ClubRequest) error
	GetClubRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ClubRequest, error)
	GetPendingClubRequestByEmail(ctx context.Context, email string) (*models.ClubRequest, error)
	GetClubRequests(ctx context.Context, status string) ([]models.ClubRequest, error)
	// ReviewClubRequest moves a pending request to status. It returns ErrNotFound
	// when no pending request with that id exists, so two concurrent reviews
	// cannot both succeed.
	ReviewClubRequest(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time, publishedClubID *primitive.ObjectID) error
	CountClubRequests(ctx context.Context, status string) (int64, error)
}

type clubRequestRepository struct {
	collection
}

// NewClubRequestRepository creates a new instance of ClubRequestRepository.
func NewClubRequestRepository(db *database.DB) ClubRequestRepository {
	return &clubRequestRepository{collection{coll: db.Collection(database.CollClubRequests), timeout: db.Timeout}}
}

func (r *clubRequestRepository) CreateClubRequest(ctx context.Context, req *models.ClubRequest) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, req)
	return mapError(err, "creating club request for %s", req.Email)
}

func (r *clubRequestRepository) GetClubRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ClubRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var req models.ClubRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return nil, mapError(err, "getting club request %s", id.Hex())
	}
	return &req, nil
}

func (r *clubRequestRepository) GetPendingClubRequestByEmail(ctx context.Context, email string) (*models.ClubRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var req models.ClubRequest
	if err := r.coll.FindOne(ctx, bson.M{"email": email, "status": models.StatusPending}).Decode(&req); err != nil {
		return nil, mapError(err, "getting pending club request for %s", email)
	}
	return &req, nil
}

func (r *clubRequestRepository) GetClubRequests(ctx context.Context, status string) ([]models.ClubRequest, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}}))
	if err != nil {
		return nil, mapError(err, "querying club requests")
	}
	reqs := []models.ClubRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, mapError(err, "decoding club requests")
	}
	return reqs, nil
}

func (r *clubRequestRepository) ReviewClubRequest(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time, publishedClubID *primitive.ObjectID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{"status": status, "reviewedAt": reviewedAt}
	if publishedClubID != nil {
		set["publishedClubId"] = *publishedClubID
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return mapError(err, "reviewing club request %s", id.Hex())
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *clubRequestRepository) CountClubRequests(ctx context.Context, status string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	return n, mapError(err, "counting club requests")
}
