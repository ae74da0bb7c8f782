package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stackweave/stackweave/internal/core/store"
	"github.com/stackweave/stackweave/internal/ctxlog"
	"github.com/stackweave/stackweave/pkg/serialization"
)

// indexKey is the second, independent key-value collection: the list of
// stacks shown on the dashboard, separate from per-workflow graphs.
const indexKey = "stacks"

// StackSummary is one dashboard entry.
type StackSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Index manages the stack list.
type Index struct {
	blobs      store.Blob
	workflows  *Workflows
	transcript *Transcripts
	serializer *serialization.Serializer
}

// NewIndex creates the stack index over the blob store.
func NewIndex(blobs store.Blob) *Index {
	return &Index{
		blobs:      blobs,
		workflows:  NewWorkflows(blobs),
		transcript: NewTranscripts(blobs),
		serializer: serialization.ForBlobs(),
	}
}

// List returns every stack, in creation order. A corrupt index is
// logged and treated as empty.
func (ix *Index) List(ctx context.Context) []StackSummary {
	data, err := ix.blobs.Get(ctx, indexKey)
	if err != nil {
		return []StackSummary{}
	}
	var stacks []StackSummary
	if err := ix.serializer.Deserialize(data, &stacks); err != nil {
		ctxlog.FromContext(ctx).Warn("stack index corrupt, starting empty", "error", err)
		return []StackSummary{}
	}
	return stacks
}

// Create appends a new stack and returns it.
func (ix *Index) Create(ctx context.Context, name, description string) (StackSummary, error) {
	stack := StackSummary{ID: uuid.NewString(), Name: name, Description: description}
	stacks := append(ix.List(ctx), stack)
	if err := ix.save(ctx, stacks); err != nil {
		return StackSummary{}, err
	}
	return stack, nil
}

// Remove deletes a stack from the index along with its workflow blob
// and transcript. Unknown ids are a no-op.
func (ix *Index) Remove(ctx context.Context, id string) error {
	stacks := ix.List(ctx)
	kept := stacks[:0]
	for _, s := range stacks {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if err := ix.save(ctx, kept); err != nil {
		return err
	}
	if err := ix.workflows.Delete(ctx, id); err != nil {
		return err
	}
	return ix.transcript.Delete(ctx, id)
}

func (ix *Index) save(ctx context.Context, stacks []StackSummary) error {
	data, err := ix.serializer.Serialize(stacks)
	if err != nil {
		return fmt.Errorf("serialize stack index: %w", err)
	}
	if err := ix.blobs.Put(ctx, indexKey, data); err != nil {
		return fmt.Errorf("store stack index: %w", err)
	}
	return nil
}
