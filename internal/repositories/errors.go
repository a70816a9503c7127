package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It wraps the driver error.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key value violates unique index")
)

// mapError turns driver errors into the repository sentinels so services never
// have to import the driver to classify failures.
func mapError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	op := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s: %v", ErrDuplicateKey, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
}

// collection bundles a mongo collection with the per-call timeout.
type collection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (c collection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
