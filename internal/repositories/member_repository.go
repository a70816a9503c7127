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

// MemberRepository defines the member collection operations.
type MemberRepository interface {
	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	GetMembers(ctx context.Context) ([]models.Member, error)
	// PromoteRole raises the member's role to role. A member already at or above
	// role is left unchanged. Returns ErrNotFound for unknown emails.
	PromoteRole(ctx context.Context, email, role string) error
	CountMembers(ctx context.Context) (int64, error)
	CountMembersByRole(ctx context.Context) (map[string]int64, error)
}

type memberRepository struct {
	collection
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *database.DB) MemberRepository {
	return &memberRepository{collection{coll: db.Collection(database.CollMembers), timeout: db.Timeout}}
}

func (r *memberRepository) CreateMember(ctx context.Context, member *models.Member) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, member)
	return mapError(err, "creating member %s", member.Email)
}

func (r *memberRepository) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var member models.Member
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&member); err != nil {
		return nil, mapError(err, "getting member %s", email)
	}
	return &member, nil
}

func (r *memberRepository) GetMembers(ctx context.Context) ([]models.Member, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, mapError(err, "querying members")
	}
	members := []models.Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, mapError(err, "decoding members")
	}
	return members, nil
}

func (r *memberRepository) PromoteRole(ctx context.Context, email, role string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email, "role": bson.M{"$nin": models.RolesAtOrAbove(role)}},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return mapError(err, "promoting %s to %s", email, role)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the member is already at or above role, or absent.
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return mapError(err, "checking member %s", email)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *memberRepository) CountMembers(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError(err, "counting members")
}

func (r *memberRepository) CountMembersByRole(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, bson.A{
		bson.M{"$group": bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, mapError(err, "aggregating member roles")
	}
	var rows []struct {
		Role  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, mapError(err, "decoding member roles")
	}
	out := map[string]int64{models.RoleMember: 0, models.RoleManager: 0, models.RoleAdmin: 0}
	for _, row := range rows {
		out[row.Role] = row.Count
	}
	return out, nil
}
