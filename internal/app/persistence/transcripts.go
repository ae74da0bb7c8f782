package persistence

import (
	"context"
	"fmt"

	"github.com/stackweave/stackweave/internal/app/dto"
	"github.com/stackweave/stackweave/internal/core/store"
	"github.com/stackweave/stackweave/internal/ctxlog"
	"github.com/stackweave/stackweave/pkg/serialization"
)

const transcriptKeyPrefix = "transcript-"

// Transcripts persists chat transcripts per workflow so a session can
// be resumed after a reload. Nobody else reads these bytes, so they use
// the compact MessagePack+zstd serializer rather than the JSON blob
// contract.
type Transcripts struct {
	blobs      store.Blob
	serializer *serialization.Serializer
}

// NewTranscripts creates a transcript persistence adapter over the blob store.
func NewTranscripts(blobs store.Blob) *Transcripts {
	return &Transcripts{blobs: blobs, serializer: serialization.ForTranscripts()}
}

// Save stores the transcript under "transcript-<id>".
func (t *Transcripts) Save(ctx context.Context, workflowID string, messages []dto.ChatMessage) error {
	data, err := t.serializer.Serialize(messages)
	if err != nil {
		return fmt.Errorf("serialize transcript %s: %w", workflowID, err)
	}
	if err := t.blobs.Put(ctx, transcriptKeyPrefix+workflowID, data); err != nil {
		return fmt.Errorf("store transcript %s: %w", workflowID, err)
	}
	return nil
}

// Load restores the transcript for a workflow. Missing or corrupt data
// yields an empty transcript, logged, never an error.
func (t *Transcripts) Load(ctx context.Context, workflowID string) []dto.ChatMessage {
	data, err := t.blobs.Get(ctx, transcriptKeyPrefix+workflowID)
	if err != nil {
		return []dto.ChatMessage{}
	}
	var messages []dto.ChatMessage
	if err := t.serializer.Deserialize(data, &messages); err != nil {
		ctxlog.FromContext(ctx).Warn("transcript corrupt, starting empty",
			"workflow_id", workflowID, "error", err)
		return []dto.ChatMessage{}
	}
	return messages
}

// Delete removes the transcript. Absent transcripts are a no-op.
func (t *Transcripts) Delete(ctx context.Context, workflowID string) error {
	return t.blobs.Delete(ctx, transcriptKeyPrefix+workflowID)
}
