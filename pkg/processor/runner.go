package processor

import (
	"context"
	"errors"
	"io"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/thistle/pkg/models"
	"github.com/Ramsey-B/thistle/pkg/reader"
)

// MergeEventEmitter publishes a notification after a committed merge. Wired
// to Kafka in production, nil when event emission is disabled.
type MergeEventEmitter interface {
	EmitRecordMerged(ctx context.Context, master models.Record, mergedIDs []string, frameworkCode string, itemsMoved int) error
}

// Runner walks the input file row by row: one group validated, merged or
// simulated, and logged before the next row is read. A crash mid-file leaves
// earlier groups merged and later rows untouched; re-running is safe because
// already-merged children no longer resolve.
type Runner struct {
	processor *Processor
	emitter   MergeEventEmitter
	logger    ectologger.Logger
}

func NewRunner(processor *Processor, emitter MergeEventEmitter, logger ectologger.Logger) *Runner {
	return &Runner{
		processor: processor,
		emitter:   emitter,
		logger:    logger,
	}
}

// Run processes the whole input file and returns the final counters. The
// only error it returns is a failure to open the input; everything after
// that is converted into outcomes and the batch runs to the end of the file.
func (r *Runner) Run(ctx context.Context, inputPath string, delimiter rune) (Stats, error) {
	groups, err := reader.Open(inputPath, delimiter)
	if err != nil {
		return Stats{}, err
	}
	defer groups.Close()

	var stats Stats
	for {
		row, err := groups.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Warn("Unparseable input row, skipping")
			stats.ApplySkippedRow()
			continue
		}
		if len(row.Fields) < 2 {
			r.logger.WithContext(ctx).WithField("row", row.Line).Warnf("Row %d has fewer than 2 identifiers, skipping", row.Line)
			stats.ApplySkippedRow()
			continue
		}

		group := models.MergeGroup{
			Line:     row.Line,
			MasterID: row.Fields[0],
			ChildIDs: row.Fields[1:],
		}

		res := r.processor.ProcessGroup(ctx, group)
		stats.Apply(res)

		if res.Outcome == OutcomeMerged && r.emitter != nil {
			if err := r.emitter.EmitRecordMerged(ctx, *res.Master, res.ChildIDs(), res.FrameworkCode, res.ItemsMoved); err != nil {
				// The merge already happened; a lost event never fails the group.
				r.logger.WithContext(ctx).WithError(err).WithField("master_id", res.Master.ID).Warn("Failed to emit record.merged event")
			}
		}
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"groups":         stats.Groups,
		"successful":     stats.Successful,
		"failed":         stats.Failed,
		"skipped":        stats.Skipped,
		"records_merged": stats.RecordsMerged,
		"items_moved":    stats.ItemsMoved,
	}).Info("Batch complete")

	return stats, nil
}
