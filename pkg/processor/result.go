package processor

import "github.com/Ramsey-B/thistle/pkg/models"

// Outcome is the terminal state of one group's processing.
type Outcome string

const (
	// OutcomeMerged means the catalog performed the merge (commit mode).
	OutcomeMerged Outcome = "merged"
	// OutcomeSimulated means the group was valid but the run is a dry-run.
	OutcomeSimulated Outcome = "simulated"
	// OutcomeRejected means the master id did not resolve.
	OutcomeRejected Outcome = "rejected"
	// OutcomeSkipped means no child id resolved (or the row was unusable).
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the merge primitive reported failure or errored.
	OutcomeFailed Outcome = "failed"
)

// Result is everything that came out of processing one group. Err is only
// set for OutcomeFailed.
type Result struct {
	Group           models.MergeGroup
	Outcome         Outcome
	Master          *models.Record
	Children        []models.Record
	MissingChildren []string
	FrameworkCode   string
	ItemsMoved      int
	Err             error
}

// ChildIDs returns the ids of the children that survived validation, in
// input order. This is the exact list handed to the merge primitive.
func (r Result) ChildIDs() []string {
	ids := make([]string, 0, len(r.Children))
	for _, child := range r.Children {
		ids = append(ids, child.ID)
	}
	return ids
}
