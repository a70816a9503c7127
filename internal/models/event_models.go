package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventStatusPublished = "published"

	RegistrationStatusRegistered = "registered"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      primitive.ObjectID `bson:"clubId" json:"clubId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	Location    string             `bson:"location" json:"location"`
	Capacity    int                `bson:"capacity" json:"capacity"` // 0 means unlimited
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// EventRegistration links a member to an event. At most one per (event, email).
type EventRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID      primitive.ObjectID `bson:"eventId" json:"eventId"`
	Email        string             `bson:"email" json:"email"`
	ClubID       primitive.ObjectID `bson:"clubId" json:"clubId"`
	Status       string             `bson:"status" json:"status"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
}
