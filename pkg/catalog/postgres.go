package catalog

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/lib/pq"

	"github.com/Ramsey-B/thistle/internal/appctx"
	"github.com/Ramsey-B/thistle/internal/repositories/biblio"
	"github.com/Ramsey-B/thistle/internal/repositories/patron"
	"github.com/Ramsey-B/thistle/pkg/database"
	"github.com/Ramsey-B/thistle/pkg/models"
	"github.com/Ramsey-B/thistle/pkg/tracing"
)

// PostgresStore talks to a catalog backend whose schema exposes record and
// patron tables plus the merge_records procedure. The procedure owns all
// referential rewiring; a single call is atomic from the records' point of
// view.
type PostgresStore struct {
	db      database.DB
	biblios *biblio.Repository
	patrons *patron.Repository
	logger  ectologger.Logger
}

func NewPostgresStore(db database.DB, logger ectologger.Logger) *PostgresStore {
	return &PostgresStore{
		db:      db,
		biblios: biblio.NewRepository(db, logger),
		patrons: patron.NewRepository(db, logger),
		logger:  logger,
	}
}

func (s *PostgresStore) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	return s.biblios.FindByID(ctx, id)
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.patrons.FindByID(ctx, id)
}

// Merge invokes catalog.merge_records. The attributed user travels with the
// call so the catalog's audit log (when enabled) records who ran the batch.
func (s *PostgresStore) Merge(ctx context.Context, masterID string, childIDs []string, frameworkCode string) error {
	ctx, span := tracing.StartSpan(ctx, "catalog.PostgresStore.Merge")
	defer span.End()

	row := s.db.QueryRowxContext(ctx,
		"SELECT catalog.merge_records($1, $2, $3, $4)",
		masterID, pq.Array(childIDs), frameworkCode, appctx.GetUserID(ctx),
	)

	var merged bool
	if err := row.Scan(&merged); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"master_id": masterID,
			"child_ids": childIDs,
		}).Error("Merge call failed")
		return fmt.Errorf("merge of %s into %s failed: %w", childIDs, masterID, err)
	}
	if !merged {
		return fmt.Errorf("catalog reported merge failure for master %s", masterID)
	}
	return nil
}
