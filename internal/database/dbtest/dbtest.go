// Package dbtest starts a throwaway MongoDB replica set for integration tests.
// Each test gets its own database on a container shared by the test binary.
package dbtest

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"clubsphere_backend/internal/config"
	"clubsphere_backend/internal/database"

	"github.com/oklog/ulid/v2"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const (
	image         = "mongo:7.0"
	containerName = "clubsphere-test-mongo"
)

var (
	sharedOnce      sync.Once
	sharedInitErr   error
	sharedContainer *mongodb.MongoDBContainer
	sharedURI       string
)

// Setup returns a connected DB with indexes in place. The test is skipped in
// -short mode or when no container runtime is available. The database is
// dropped when the test ends.
func Setup(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}

	initShared()
	if sharedInitErr != nil {
		t.Skipf("mongo container unavailable: %v", sharedInitErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := "clubsphere_" + strings.ToLower(ulid.Make().String())
	db, err := database.Connect(ctx, config.MongoConfig{
		URI:          sharedURI,
		DatabaseName: name,
		Transactions: true,
		Timeout:      10 * time.Second,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

// Terminate stops the shared container. Call it from TestMain after m.Run.
func Terminate() {
	if sharedContainer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = testcontainers.TerminateContainer(sharedContainer, testcontainers.StopContext(ctx))
}

func initShared() {
	sharedOnce.Do(func() {
		if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
			sharedURI = uri
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := mongodb.Run(ctx, image,
			mongodb.WithReplicaSet("rs0"),
			testcontainers.WithReuseByName(containerName),
		)
		if err != nil {
			sharedInitErr = err
			return
		}
		sharedContainer = container

		uri, err := container.ConnectionString(ctx)
		if err != nil {
			sharedInitErr = err
			return
		}
		if !strings.Contains(uri, "directConnection") {
			sep := "/?"
			if strings.Contains(uri, "?") {
				sep = "&"
			} else if strings.HasSuffix(uri, "/") {
				sep = "?"
			}
			uri += sep + "directConnection=true"
		}
		sharedURI = uri
	})
}
