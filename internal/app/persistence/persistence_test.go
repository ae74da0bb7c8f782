package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackweave/stackweave/internal/adapters/repository/memory"
	"github.com/stackweave/stackweave/internal/app/dto"
	"github.com/stackweave/stackweave/internal/core/node"
	"github.com/stackweave/stackweave/internal/core/workflow"
)

func editedSnapshot(t *testing.T) workflow.Snapshot {
	t.Helper()
	s := workflow.NewStore()
	uq, err := s.AddNode(node.KindUserQuery, workflow.Position{X: 50, Y: 80}, map[string]any{"query": "summarize"})
	require.NoError(t, err)
	llm, err := s.AddNode(node.KindLLM, workflow.Position{X: 300, Y: 80}, map[string]any{"apiKey": "sk"})
	require.NoError(t, err)
	out, err := s.AddNode(node.KindOutput, workflow.Position{X: 550, Y: 80}, nil)
	require.NoError(t, err)
	_, err = s.AddEdge(llm.ID, "output", out.ID, "input")
	require.NoError(t, err)
	_ = uq
	return s.Snapshot()
}

func TestWorkflows_SaveLoadRoundTrip(t *testing.T) {
	blobs := memory.NewBlobStore()
	w := NewWorkflows(blobs)
	ctx := context.Background()
	snap := editedSnapshot(t)

	require.NoError(t, w.Save(ctx, "wf-1", snap))
	got := w.Load(ctx, "wf-1")
	assert.Equal(t, snap, got)

	// The blob lives under the workflow-prefixed key.
	_, err := blobs.Get(ctx, "workflow-wf-1")
	assert.NoError(t, err)
}

func TestWorkflows_LoadMissing(t *testing.T) {
	w := NewWorkflows(memory.NewBlobStore())

	got := w.Load(context.Background(), "never-saved")
	assert.True(t, got.Empty())
	assert.NotNil(t, got.Nodes)
	assert.NotNil(t, got.Edges)
}

func TestWorkflows_LoadCorrupt(t *testing.T) {
	blobs := memory.NewBlobStore()
	ctx := context.Background()
	require.NoError(t, blobs.Put(ctx, "workflow-bad", []byte("{truncated")))

	got := NewWorkflows(blobs).Load(ctx, "bad")
	assert.True(t, got.Empty())
}

func TestWorkflows_SaveOverwrites(t *testing.T) {
	blobs := memory.NewBlobStore()
	w := NewWorkflows(blobs)
	ctx := context.Background()

	require.NoError(t, w.Save(ctx, "wf-1", editedSnapshot(t)))
	require.NoError(t, w.Save(ctx, "wf-1", workflow.EmptySnapshot()))

	assert.True(t, w.Load(ctx, "wf-1").Empty())
}

func TestWorkflows_Delete(t *testing.T) {
	blobs := memory.NewBlobStore()
	w := NewWorkflows(blobs)
	ctx := context.Background()

	require.NoError(t, w.Save(ctx, "wf-1", editedSnapshot(t)))
	require.NoError(t, w.Delete(ctx, "wf-1"))
	assert.True(t, w.Load(ctx, "wf-1").Empty())
}

func TestTranscripts_SaveLoadRoundTrip(t *testing.T) {
	tr := NewTranscripts(memory.NewBlobStore())
	ctx := context.Background()

	messages := []dto.ChatMessage{
		{Role: dto.RoleAssistant, Content: "The answer is 42"},
		{Role: dto.RoleUser, Content: "Elaborate."},
	}
	require.NoError(t, tr.Save(ctx, "wf-1", messages))
	assert.Equal(t, messages, tr.Load(ctx, "wf-1"))
}

func TestTranscripts_LoadMissingOrCorrupt(t *testing.T) {
	blobs := memory.NewBlobStore()
	tr := NewTranscripts(blobs)
	ctx := context.Background()

	assert.Empty(t, tr.Load(ctx, "never-saved"))

	require.NoError(t, blobs.Put(ctx, "transcript-bad", []byte("not a zstd frame")))
	assert.Empty(t, tr.Load(ctx, "bad"))
}

func TestIndex_CreateListRemove(t *testing.T) {
	blobs := memory.NewBlobStore()
	ix := NewIndex(blobs)
	ctx := context.Background()

	assert.Empty(t, ix.List(ctx))

	first, err := ix.Create(ctx, "PDF Q&A", "ask questions about a PDF")
	require.NoError(t, err)
	second, err := ix.Create(ctx, "Web research", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stacks := ix.List(ctx)
	require.Len(t, stacks, 2)
	assert.Equal(t, "PDF Q&A", stacks[0].Name)
	assert.Equal(t, "Web research", stacks[1].Name)

	require.NoError(t, ix.Remove(ctx, first.ID))
	stacks = ix.List(ctx)
	require.Len(t, stacks, 1)
	assert.Equal(t, second.ID, stacks[0].ID)
}

func TestIndex_RemoveCleansUpBlobs(t *testing.T) {
	blobs := memory.NewBlobStore()
	ix := NewIndex(blobs)
	w := NewWorkflows(blobs)
	tr := NewTranscripts(blobs)
	ctx := context.Background()

	stack, err := ix.Create(ctx, "doomed", "")
	require.NoError(t, err)
	require.NoError(t, w.Save(ctx, stack.ID, editedSnapshot(t)))
	require.NoError(t, tr.Save(ctx, stack.ID, []dto.ChatMessage{{Role: dto.RoleAssistant, Content: "hi"}}))

	require.NoError(t, ix.Remove(ctx, stack.ID))

	assert.True(t, w.Load(ctx, stack.ID).Empty())
	assert.Empty(t, tr.Load(ctx, stack.ID))
}

func TestIndex_RemoveUnknownID(t *testing.T) {
	ix := NewIndex(memory.NewBlobStore())
	ctx := context.Background()

	_, err := ix.Create(ctx, "keep", "")
	require.NoError(t, err)

	require.NoError(t, ix.Remove(ctx, "no-such-stack"))
	assert.Len(t, ix.List(ctx), 1)
}

func TestIndex_CorruptIndexTreatedAsEmpty(t *testing.T) {
	blobs := memory.NewBlobStore()
	ctx := context.Background()
	require.NoError(t, blobs.Put(ctx, "stacks", []byte("][")))

	ix := NewIndex(blobs)
	assert.Empty(t, ix.List(ctx))

	// Create still works, replacing the corrupt blob.
	_, err := ix.Create(ctx, "fresh", "")
	require.NoError(t, err)
	assert.Len(t, ix.List(ctx), 1)
}
