package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ClubRevenue is the paid total for one club, grouped by club id.
type ClubRevenue struct {
	ClubID       primitive.ObjectID `bson:"_id" json:"clubId"`
	Revenue      float64            `bson:"revenue" json:"revenue"`
	Payments     int                `bson:"payments" json:"payments"`
	PayingEmails int                `bson:"payingEmails" json:"members"`
}

// ClubStats joins a club with its revenue figures.
type ClubStats struct {
	ClubID   primitive.ObjectID `json:"clubId"`
	ClubName string             `json:"clubName"`
	Revenue  float64            `json:"revenue"`
	Payments int                `json:"payments"`
	Members  int                `json:"members"`
}

// AdminStats is the dashboard summary.
type AdminStats struct {
	TotalMembers       int64            `json:"totalMembers"`
	MembersByRole      map[string]int64 `json:"membersByRole"`
	TotalClubs         int64            `json:"totalClubs"`
	PendingClubs       int64            `json:"pendingClubRequests"`
	TotalPayments      int64            `json:"totalPayments"`
	TotalRevenue       float64          `json:"totalRevenue"`
	TotalEvents        int64            `json:"totalEvents"`
	TotalRegistrations int64            `json:"totalRegistrations"`
	Clubs              []ClubStats      `json:"clubs"`
}
