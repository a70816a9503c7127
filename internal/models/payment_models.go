package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentStatusPaid = "paid"

// Payment is a confirmed membership payment. TransactionID is the
// de-duplication key for repeated success callbacks.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	ClubID        primitive.ObjectID `bson:"clubId" json:"clubId"`
	ClubName      string             `bson:"clubName,omitempty" json:"clubName,omitempty"`
	ManagerEmail  string             `bson:"managerEmail,omitempty" json:"managerEmail,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	SessionID     string             `bson:"sessionId" json:"sessionId"`
	Status        string             `bson:"status" json:"status"`
	TrackingID    string             `bson:"trackingId" json:"trackingId"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
