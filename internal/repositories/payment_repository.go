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

// PaymentRepository defines the payment collection operations, including the
// revenue aggregations used by reports.
type PaymentRepository interface {
	// CreatePayment inserts a payment. A second payment with the same
	// transaction id fails with ErrDuplicateKey.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	GetPaymentsByCustomer(ctx context.Context, email string) ([]models.Payment, error)
	HasPaidForClub(ctx context.Context, email string, clubID primitive.ObjectID) (bool, error)
	CountPayments(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	RevenueByClub(ctx context.Context) ([]models.ClubRevenue, error)
}

type paymentRepository struct {
	collection
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *database.DB) PaymentRepository {
	return &paymentRepository{collection{coll: db.Collection(database.CollPayments), timeout: db.Timeout}}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, payment)
	return mapError(err, "creating payment %s", payment.TransactionID)
}

func (r *paymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment); err != nil {
		return nil, mapError(err, "getting payment %s", transactionID)
	}
	return &payment, nil
}

func (r *paymentRepository) GetPaymentsByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"customerEmail": email}, options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}}))
	if err != nil {
		return nil, mapError(err, "querying payments for %s", email)
	}
	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, mapError(err, "decoding payments")
	}
	return payments, nil
}

func (r *paymentRepository) HasPaidForClub(ctx context.Context, email string, clubID primitive.ObjectID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx,
		bson.M{"customerEmail": email, "clubId": clubID, "status": models.PaymentStatusPaid},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, mapError(err, "checking payment of %s for club %s", email, clubID.Hex())
	}
	return n > 0, nil
}

func (r *paymentRepository) CountPayments(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": models.PaymentStatusPaid})
	return n, mapError(err, "counting payments")
}

func (r *paymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"status": models.PaymentStatusPaid}},
		bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	})
	if err != nil {
		return 0, mapError(err, "aggregating revenue")
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, mapError(err, "decoding revenue")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *paymentRepository) RevenueByClub(ctx context.Context) ([]models.ClubRevenue, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"status": models.PaymentStatusPaid}},
		bson.M{"$group": bson.M{
			"_id":      "$clubId",
			"revenue":  bson.M{"$sum": "$amount"},
			"payments": bson.M{"$sum": 1},
			"emails":   bson.M{"$addToSet": "$customerEmail"},
		}},
		bson.M{"$project": bson.M{
			"revenue":      1,
			"payments":     1,
			"payingEmails": bson.M{"$size": "$emails"},
		}},
		bson.M{"$sort": bson.M{"revenue": -1}},
	})
	if err != nil {
		return nil, mapError(err, "aggregating revenue by club")
	}
	rows := []models.ClubRevenue{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, mapError(err, "decoding revenue by club")
	}
	return rows, nil
}
