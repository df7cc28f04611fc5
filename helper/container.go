package helper

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	testDatabase = "concierge_test"
	testUser     = "concierge"
	testPassword = "concierge"
)

// MustStartPostgresContainer starts a pgvector-enabled postgres container for tests.
// It returns the terminate function, the mapped host port and any startup error.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	dbContainer, err := postgres.Run(
		ctx,
		"pgvector/pgvector:pg17",
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", err
	}

	dbPort, err := dbContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, "", err
	}

	return dbContainer.Terminate, dbPort.Port(), nil
}

// SetTestDatabaseConfigEnvs sets the database environment variables for the
// test container so NewDatabaseConfiguration picks them up.
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_USER", testUser)
	t.Setenv("DB_PASSWORD", testPassword)
	t.Setenv("DB_DATABASE", testDatabase)
}

// NewTestDatabase creates a database connection with a quiet logger for tests
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelWarn},
	}))

	db := NewDatabase("concierge_test", config, logger)
	db.Instance.SetConnMaxLifetime(5 * time.Minute)

	return db
}
