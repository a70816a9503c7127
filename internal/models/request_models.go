package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review states shared by club requests and club-manager requests.
// pending -> approved | rejected; both outcomes are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsValidRequestStatus reports whether s is one of the review states.
func IsValidRequestStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ClubRequest is an application to publish a new club.
type ClubRequest struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email           string              `bson:"email" json:"email"`
	ClubName        string              `bson:"clubName" json:"clubName"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Category        string              `bson:"category,omitempty" json:"category,omitempty"`
	Location        string              `bson:"location,omitempty" json:"location,omitempty"`
	BannerImage     string              `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	MonthlyCharge   float64             `bson:"monthlyCharge" json:"monthlyCharge"`
	Status          string              `bson:"status" json:"status"`
	SubmittedAt     time.Time           `bson:"submittedAt" json:"submittedAt"`
	ReviewedAt      *time.Time          `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	PublishedClubID *primitive.ObjectID `bson:"publishedClubId,omitempty" json:"publishedClubId,omitempty"`
}

// ClubManagerRequest is a member asking to become a club manager.
type ClubManagerRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	ReviewedAt *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
}
