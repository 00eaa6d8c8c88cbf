package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/thistle/pkg/catalog"
	"github.com/Ramsey-B/thistle/pkg/database"
	"github.com/Ramsey-B/thistle/pkg/logging"
	"github.com/Ramsey-B/thistle/pkg/models"
	"github.com/Ramsey-B/thistle/pkg/processor"
)

// Requires a live catalog database; set DB_HOST (plus DB_USER_NAME,
// DB_PASSWORD, DB_NAME as needed) and seed records 75, 801 and 802 before
// running.
func getTestStore(t *testing.T) catalog.Store {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set, skipping catalog integration test")
	}

	cfg := database.Config{
		Driver:       "postgres",
		Host:         os.Getenv("DB_HOST"),
		Port:         envOr("DB_PORT", "5432"),
		UserName:     envOr("DB_USER_NAME", "user"),
		Password:     envOr("DB_PASSWORD", "password"),
		Name:         envOr("DB_NAME", "catalog"),
		SSLMode:      "disable",
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}

	db, err := database.Connect(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	return catalog.NewPostgresStore(db, logging.NewNop())
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func TestDryRunAgainstLiveCatalog(t *testing.T) {
	store := getTestStore(t)

	input := filepath.Join(t.TempDir(), "groups.csv")
	require.NoError(t, os.WriteFile(input, []byte("75,801,802\n"), 0o644))

	p := processor.NewProcessor(store, models.FrameworkPolicy{}, false, logging.NewNop())
	stats, err := processor.NewRunner(p, nil, logging.NewNop()).Run(context.Background(), input, ',')
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Groups)
	assert.Equal(t, stats.Groups, stats.Successful+stats.Failed+stats.Skipped)
}

func TestRecordLookupAgainstLiveCatalog(t *testing.T) {
	store := getTestStore(t)

	record, err := store.GetRecord(context.Background(), "75")
	require.NoError(t, err)
	require.NotNil(t, record, "record 75 must be seeded for integration tests")
	assert.Equal(t, "75", record.ID)

	missing, err := store.GetRecord(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
