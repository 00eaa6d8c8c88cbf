// Package processor drives merge groups through validation and the catalog's
// merge primitive, one group at a time. A group's failure never escapes to
// the batch loop; it becomes a Result and a counter.
package processor

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/thistle/pkg/catalog"
	"github.com/Ramsey-B/thistle/pkg/models"
	"github.com/Ramsey-B/thistle/pkg/tracing"
)

// Processor validates one group against the catalog and merges or simulates
// it. Stateless between groups.
type Processor struct {
	store  catalog.Store
	policy models.FrameworkPolicy
	commit bool
	logger ectologger.Logger
}

func NewProcessor(store catalog.Store, policy models.FrameworkPolicy, commit bool, logger ectologger.Logger) *Processor {
	return &Processor{
		store:  store,
		policy: policy,
		commit: commit,
		logger: logger,
	}
}

// ProcessGroup runs one group to a terminal outcome. Catalog errors are
// folded into the result rather than returned.
func (p *Processor) ProcessGroup(ctx context.Context, group models.MergeGroup) Result {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.ProcessGroup")
	defer span.End()

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"row":       group.Line,
		"master_id": group.MasterID,
	})

	res := Result{Group: group}

	master, err := p.store.GetRecord(ctx, group.MasterID)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		log.WithError(err).Error("Failed to resolve master record")
		return res
	}
	if master == nil {
		res.Outcome = OutcomeRejected
		log.Error("Master record does not exist, rejecting group")
		return res
	}
	res.Master = master
	log.WithField("title", master.Title).Debug("Resolved master record")

	for _, childID := range group.ChildIDs {
		child, err := p.store.GetRecord(ctx, childID)
		if err != nil {
			res.MissingChildren = append(res.MissingChildren, childID)
			log.WithError(err).WithField("child_id", childID).Warn("Failed to resolve child record, dropping from group")
			continue
		}
		if child == nil {
			res.MissingChildren = append(res.MissingChildren, childID)
			log.WithField("child_id", childID).Warn("Child record does not exist, dropping from group")
			continue
		}
		if child.FrameworkCode != master.FrameworkCode {
			// Advisory only; the merge still happens.
			log.WithFields(map[string]any{
				"child_id":         child.ID,
				"child_framework":  child.FrameworkCode,
				"master_framework": master.FrameworkCode,
			}).Warn("Child framework code differs from master")
		}
		res.Children = append(res.Children, *child)
	}

	if len(res.Children) == 0 {
		res.Outcome = OutcomeSkipped
		log.Warn("No child records resolve, skipping group")
		return res
	}

	res.FrameworkCode = p.policy.Resolve(master.FrameworkCode)

	if !p.commit {
		res.Outcome = OutcomeSimulated
		log.WithFields(map[string]any{
			"child_ids": res.ChildIDs(),
			"framework": res.FrameworkCode,
		}).Infof("[DRY-RUN] Would merge %d record(s) into %s", len(res.Children), master.ID)
		return res
	}

	if err := p.store.Merge(ctx, master.ID, res.ChildIDs(), res.FrameworkCode); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		log.WithError(err).Error("Merge failed")
		return res
	}

	for _, child := range res.Children {
		res.ItemsMoved += child.ItemCount
	}
	res.Outcome = OutcomeMerged
	log.WithFields(map[string]any{
		"child_ids":   res.ChildIDs(),
		"framework":   res.FrameworkCode,
		"items_moved": res.ItemsMoved,
	}).Infof("Merged %d record(s) into %s", len(res.Children), master.ID)
	return res
}
