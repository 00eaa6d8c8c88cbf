// Package catalog defines the driver's view of the integrated library
// system: record lookup, patron lookup, and the merge primitive. The merge
// semantics (reassigning holdings, holds, orders, subscriptions, reserves,
// ILL requests, recalls and tags, then deleting the children) live entirely
// inside the catalog; this package only invokes them.
package catalog

import (
	"context"
	"errors"

	"github.com/Ramsey-B/thistle/pkg/models"
)

// ErrUserNotFound is returned when an attribution id does not resolve to an
// existing patron.
var ErrUserNotFound = errors.New("user not found")

// Store is the catalog capability the batch driver runs against. Lookups
// return (nil, nil) when the id does not resolve.
type Store interface {
	GetRecord(ctx context.Context, id string) (*models.Record, error)
	GetUser(ctx context.Context, id string) (*models.User, error)

	// Merge folds the child records into the master, applying the given
	// framework code to the merged record, and deletes the children.
	// Exactly one call is made per accepted group.
	Merge(ctx context.Context, masterID string, childIDs []string, frameworkCode string) error
}
