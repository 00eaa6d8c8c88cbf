// Package events handles event emission for committed merges
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/thistle/internal/appctx"
	"github.com/Ramsey-B/thistle/pkg/kafka"
	"github.com/Ramsey-B/thistle/pkg/models"
	"github.com/Ramsey-B/thistle/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter publishes record.merged events after the catalog commits a merge.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitRecordMerged emits a record.merged event for one committed group.
func (e *Emitter) EmitRecordMerged(ctx context.Context, master models.Record, mergedIDs []string, frameworkCode string, itemsMoved int) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRecordMerged")
	defer span.End()

	event := &kafka.RecordMergedEvent{
		EventType:     "record.merged",
		SchemaVersion: SchemaVersion,
		RunID:         appctx.GetRunID(ctx),
		MasterID:      master.ID,
		MergedIDs:     mergedIDs,
		FrameworkCode: frameworkCode,
		ItemsMoved:    itemsMoved,
		AttributedTo:  appctx.GetUserID(ctx),
	}

	if err := e.producer.PublishRecordMergedEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit record.merged event")
		return err
	}
	return nil
}
