package database

import (
	"context"
	"fmt"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpec lists the indexes each collection needs. The unique ones back the
// business invariants (one pending request per email, one payment per
// transaction, one registration per event and email).
func indexSpec() map[string][]mongo.IndexModel {
	pendingOnly := bson.M{"status": models.StatusPending}

	return map[string][]mongo.IndexModel{
		CollMembers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("role")},
		},
		CollClubRequests: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_pending_email").SetUnique(true).SetPartialFilterExpression(pendingOnly)},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submittedAt", Value: -1}}, Options: options.Index().SetName("status_submitted")},
		},
		CollClubManagerRequests: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_pending_email").SetUnique(true).SetPartialFilterExpression(pendingOnly)},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("status_created")},
		},
		CollClubs: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("manager_email")},
			{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("category")},
		},
		CollPayments: {
			{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetName("uniq_transaction").SetUnique(true)},
			{Keys: bson.D{{Key: "customerEmail", Value: 1}, {Key: "clubId", Value: 1}}, Options: options.Index().SetName("customer_club")},
		},
		CollEvents: {
			{Keys: bson.D{{Key: "clubId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetName("club_date")},
		},
		CollEventRegistrations: {
			{Keys: bson.D{{Key: "eventId", Value: 1}, {Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_event_email").SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("email")},
		},
	}
}

// EnsureIndexes creates missing indexes. Creating an index that already exists
// with the same definition is a no-op on the server. A unique index that cannot
// be built because existing documents collide is logged and skipped so the
// service still starts on data written before the index existed; the colliding
// documents must be cleaned up for the index to appear on a later start.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for coll, idx := range indexSpec() {
		for _, model := range idx {
			name, err := d.Collection(coll).Indexes().CreateOne(ctx, model)
			if err != nil {
				if mongo.IsDuplicateKeyError(err) {
					utils.LogError(err, fmt.Sprintf("Skipping unique index on %s: existing documents collide", coll))
					continue
				}
				return fmt.Errorf("creating indexes on %s: %w", coll, err)
			}
			utils.LogDebug("Index ensured", map[string]interface{}{"collection": coll, "index": name})
		}
	}
	return nil
}
