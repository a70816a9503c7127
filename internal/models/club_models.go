package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club is a published club. It only comes into existence by approving a ClubRequest.
type Club struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID     primitive.ObjectID `bson:"requestId" json:"requestId"`
	ManagerEmail  string             `bson:"email" json:"email"`
	ClubName      string             `bson:"clubName" json:"clubName"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	BannerImage   string             `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	MonthlyCharge float64            `bson:"monthlyCharge" json:"monthlyCharge"`
	IsPublished   bool               `bson:"isPublished" json:"isPublished"`
	ApprovedAt    time.Time          `bson:"approvedAt" json:"approvedAt"`
}

// ClubFromRequest copies the club fields of an approved request. Review fields
// (status, timestamps, back-reference) stay on the request.
func ClubFromRequest(id primitive.ObjectID, req *ClubRequest, approvedAt time.Time) *Club {
	return &Club{
		ID:            id,
		RequestID:     req.ID,
		ManagerEmail:  req.Email,
		ClubName:      req.ClubName,
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		BannerImage:   req.BannerImage,
		MonthlyCharge: req.MonthlyCharge,
		IsPublished:   true,
		ApprovedAt:    approvedAt,
	}
}

// ClubFilters narrows club listings.
type ClubFilters struct {
	Search       string
	Category     string
	ManagerEmail string
}
