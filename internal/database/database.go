package database

import (
	"context"
	"fmt"
	"time"

	"clubsphere_backend/internal/config"
	"clubsphere_backend/internal/metrics"
	"clubsphere_backend/pkg/utils"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	CollMembers             = "members"
	CollClubRequests        = "clubRequests"
	CollClubManagerRequests = "clubManagerRequests"
	CollClubs               = "clubs"
	CollPayments            = "payments"
	CollEvents              = "events"
	CollEventRegistrations  = "eventRegistrations"
)

// DB is the process-wide mongo handle. It is created once in main, passed to
// every repository and closed at shutdown.
type DB struct {
	Client       *mongo.Client
	Database     *mongo.Database
	Timeout      time.Duration
	transactions bool
}

// Connect opens the client and verifies the deployment answers a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMonitor(commandMonitor()).
		SetPoolMonitor(poolMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db := &DB{
		Client:       client,
		Database:     client.Database(cfg.DatabaseName),
		Timeout:      cfg.Timeout,
		transactions: cfg.Transactions,
	}
	if err := db.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{
		"database":     cfg.DatabaseName,
		"transactions": cfg.Transactions,
	})
	return db, nil
}

// Ping checks the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close releases the client's connections.
func (d *DB) Close(ctx context.Context) error {
	if err := d.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from database: %w", err)
	}
	utils.LogInfo("Database connection closed")
	return nil
}

// Collection returns a handle to the named collection of the configured database.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.Database.Collection(name)
}

func commandMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			metrics.DBCommandDuration.WithLabelValues(e.CommandName).Observe(e.Duration.Seconds())
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			metrics.DBCommandDuration.WithLabelValues(e.CommandName).Observe(e.Duration.Seconds())
			metrics.DBCommandErrors.WithLabelValues(e.CommandName).Inc()
		},
	}
}

func poolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionCreated:
				metrics.DBConnectionsOpen.Inc()
			case event.ConnectionClosed:
				metrics.DBConnectionsOpen.Dec()
			}
		},
	}
}
