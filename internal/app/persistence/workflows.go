// Package persistence maps workflow state onto the opaque blob store.
//
// Loads never fail over missing or corrupt data: persistence problems
// must never block editing, so the recovery is an empty value plus a
// log line.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackweave/stackweave/internal/core/store"
	"github.com/stackweave/stackweave/internal/core/workflow"
	"github.com/stackweave/stackweave/internal/ctxlog"
	"github.com/stackweave/stackweave/pkg/serialization"
)

const workflowKeyPrefix = "workflow-"

// Workflows persists workflow snapshots keyed by workflow identity.
type Workflows struct {
	blobs      store.Blob
	serializer *serialization.Serializer
}

// NewWorkflows creates a workflow persistence adapter over the blob store.
func NewWorkflows(blobs store.Blob) *Workflows {
	return &Workflows{blobs: blobs, serializer: serialization.ForBlobs()}
}

// Save snapshots the workflow under "workflow-<id>" as structural JSON.
func (w *Workflows) Save(ctx context.Context, workflowID string, snap workflow.Snapshot) error {
	data, err := w.serializer.Serialize(snap)
	if err != nil {
		return fmt.Errorf("serialize workflow %s: %w", workflowID, err)
	}
	if err := w.blobs.Put(ctx, workflowKeyPrefix+workflowID, data); err != nil {
		return fmt.Errorf("store workflow %s: %w", workflowID, err)
	}
	return nil
}

// Load restores the snapshot saved for the workflow. Missing or
// malformed data yields an empty snapshot: corruption is logged and
// recovered, never surfaced as a blocking error.
func (w *Workflows) Load(ctx context.Context, workflowID string) workflow.Snapshot {
	data, err := w.blobs.Get(ctx, workflowKeyPrefix+workflowID)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			ctxlog.FromContext(ctx).Warn("workflow blob unreadable, starting empty",
				"workflow_id", workflowID, "error", err)
		}
		return workflow.EmptySnapshot()
	}

	var snap workflow.Snapshot
	if err := w.serializer.Deserialize(data, &snap); err != nil {
		ctxlog.FromContext(ctx).Warn("workflow blob corrupt, starting empty",
			"workflow_id", workflowID, "error", err)
		return workflow.EmptySnapshot()
	}
	if snap.Nodes == nil {
		snap.Nodes = []workflow.Node{}
	}
	if snap.Edges == nil {
		snap.Edges = []workflow.Edge{}
	}
	return snap
}

// Delete removes the workflow's blob. Absent blobs are a no-op.
func (w *Workflows) Delete(ctx context.Context, workflowID string) error {
	return w.blobs.Delete(ctx, workflowKeyPrefix+workflowID)
}
