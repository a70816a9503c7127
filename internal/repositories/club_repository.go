package repositories

import (
	"context"
	"regexp"

	"clubsphere_backend/internal/database"
	"clubsphere_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClubRepository defines the published club collection operations.
type ClubRepository interface {
	CreateClub(ctx context.Context, club *models.Club) error
	GetClubByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error)
	GetClubs(ctx context.Context, filters models.ClubFilters) ([]models.Club, error)
	CountClubs(ctx context.Context) (int64, error)
}

type clubRepository struct {
	collection
}

// NewClubRepository creates a new instance of ClubRepository.
func NewClubRepository(db *database.DB) ClubRepository {
	return &clubRepository{collection{coll: db.Collection(database.CollClubs), timeout: db.Timeout}}
}

func (r *clubRepository) CreateClub(ctx context.Context, club *models.Club) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if club.ID.IsZero() {
		club.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, club)
	return mapError(err, "creating club %s", club.ClubName)
}

func (r *clubRepository) GetClubByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var club models.Club
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&club); err != nil {
		return nil, mapError(err, "getting club %s", id.Hex())
	}
	return &club, nil
}

func (r *clubRepository) GetClubs(ctx context.Context, filters models.ClubFilters) ([]models.Club, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"isPublished": true}
	if filters.Search != "" {
		filter["clubName"] = primitive.Regex{Pattern: regexp.QuoteMeta(filters.Search), Options: "i"}
	}
	if filters.Category != "" {
		filter["category"] = filters.Category
	}
	if filters.ManagerEmail != "" {
		filter["email"] = filters.ManagerEmail
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "approvedAt", Value: -1}}))
	if err != nil {
		return nil, mapError(err, "querying clubs")
	}
	clubs := []models.Club{}
	if err := cursor.All(ctx, &clubs); err != nil {
		return nil, mapError(err, "decoding clubs")
	}
	return clubs, nil
}

func (r *clubRepository) CountClubs(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"isPublished": true})
	return n, mapError(err, "counting clubs")
}
