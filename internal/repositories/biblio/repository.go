package biblio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/thistle/pkg/database"
	"github.com/Ramsey-B/thistle/pkg/models"
	"github.com/Ramsey-B/thistle/pkg/tracing"
)

// Repository reads bibliographic records from the catalog database.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// FindByID returns the record with its framework code, title and current
// item count, or nil when the id does not resolve. The item count is
// best-effort reporting data, not a validation input.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Record, error) {
	ctx, span := tracing.StartSpan(ctx, "biblio.Repository.FindByID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"id",
		"framework_code",
		"title",
		"(SELECT COUNT(*) FROM catalog.items i WHERE i.record_id = r.id) AS item_count",
	)
	sb.From("catalog.records r")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var record models.Record
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithField("record_id", id).Error("Failed to look up record")
		return nil, fmt.Errorf("failed to look up record %s: %w", id, err)
	}
	return &record, nil
}
