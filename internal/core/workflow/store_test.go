package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackweave/stackweave/internal/core/node"
)

func buildStore(t *testing.T) (*Store, Node, Node, Node, Node) {
	t.Helper()
	s := NewStore()

	uq, err := s.AddNode(node.KindUserQuery, Position{X: 10, Y: 20}, map[string]any{"query": "hi"})
	require.NoError(t, err)
	kb, err := s.AddNode(node.KindKnowledgeBase, Position{X: 200, Y: 20}, nil)
	require.NoError(t, err)
	llm, err := s.AddNode(node.KindLLM, Position{X: 400, Y: 20}, map[string]any{"apiKey": "k"})
	require.NoError(t, err)
	out, err := s.AddNode(node.KindOutput, Position{X: 600, Y: 20}, nil)
	require.NoError(t, err)

	return s, uq, kb, llm, out
}

func TestStore_AddNode(t *testing.T) {
	s := NewStore()

	n, err := s.AddNode(node.KindLLM, Position{X: 1, Y: 2}, map[string]any{"apiKey": "sk"})
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, node.KindLLM, n.Kind)
	assert.Equal(t, Position{X: 1, Y: 2}, n.Position)

	// Config is the descriptor default merged with the initial values.
	cfg := n.Config.(*node.LLMConfig)
	assert.Equal(t, "sk", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)

	m, err := s.AddNode(node.KindLLM, Position{}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, n.ID, m.ID)
}

func TestStore_AddNode_UnknownKind(t *testing.T) {
	s := NewStore()
	_, err := s.AddNode("mystery", Position{}, nil)
	assert.ErrorIs(t, err, node.ErrUnknownNodeKind)
	assert.Empty(t, s.Snapshot().Nodes)
}

func TestStore_RemoveNode_CascadesEdges(t *testing.T) {
	s, uq, kb, llm, out := buildStore(t)

	_, err := s.AddEdge(uq.ID, "query", kb.ID, "query")
	require.NoError(t, err)
	_, err = s.AddEdge(kb.ID, "context", llm.ID, "context")
	require.NoError(t, err)
	_, err = s.AddEdge(llm.ID, "output", out.ID, "input")
	require.NoError(t, err)

	s.RemoveNode(kb.ID)

	snap := s.Snapshot()
	assert.Len(t, snap.Nodes, 3)
	require.Len(t, snap.Edges, 1)
	assert.Equal(t, llm.ID, snap.Edges[0].SourceNodeID)

	// No edge may reference the removed node, as source or target.
	for _, e := range snap.Edges {
		assert.NotEqual(t, kb.ID, e.SourceNodeID)
		assert.NotEqual(t, kb.ID, e.TargetNodeID)
	}
}

func TestStore_RemoveNode_AbsentIsNoOp(t *testing.T) {
	s, _, _, _, _ := buildStore(t)
	before := s.Snapshot()
	s.RemoveNode("nope")
	assert.Equal(t, before, s.Snapshot())
}

func TestStore_AddEdge(t *testing.T) {
	s, uq, kb, llm, out := buildStore(t)

	tests := []struct {
		name       string
		source     string
		sourcePort string
		target     string
		targetPort string
		wantErr    bool
	}{
		{"valid query edge", uq.ID, "query", kb.ID, "query", false},
		{"valid context edge", kb.ID, "context", llm.ID, "context", false},
		{"valid output edge", llm.ID, "output", out.ID, "input", false},
		{"missing source node", "ghost", "query", kb.ID, "query", true},
		{"missing target node", uq.ID, "query", "ghost", "query", true},
		{"not an output port", uq.ID, "nope", kb.ID, "query", true},
		{"input port used as output", llm.ID, "context", out.ID, "input", true},
		{"not an input port", uq.ID, "query", kb.ID, "context", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(s.Snapshot().Edges)
			e, err := s.AddEdge(tt.source, tt.sourcePort, tt.target, tt.targetPort)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPortReference)
				// Rejected edges leave the edge set unchanged.
				assert.Len(t, s.Snapshot().Edges, before)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, e.ID)
			assert.Len(t, s.Snapshot().Edges, before+1)
		})
	}
}

func TestStore_AddEdge_DuplicatesPermitted(t *testing.T) {
	s, uq, kb, _, _ := buildStore(t)

	first, err := s.AddEdge(uq.ID, "query", kb.ID, "query")
	require.NoError(t, err)
	second, err := s.AddEdge(uq.ID, "query", kb.ID, "query")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, s.Snapshot().Edges, 2)
}

func TestStore_RemoveEdge(t *testing.T) {
	s, uq, kb, _, _ := buildStore(t)
	e, err := s.AddEdge(uq.ID, "query", kb.ID, "query")
	require.NoError(t, err)

	s.RemoveEdge(e.ID)
	assert.Empty(t, s.Snapshot().Edges)

	s.RemoveEdge("already-gone")
	assert.Empty(t, s.Snapshot().Edges)
}

func TestStore_UpdateNodeConfig(t *testing.T) {
	s, _, _, llm, _ := buildStore(t)

	s.UpdateNodeConfig(llm.ID, "model", "gpt-4o")

	snap := s.Snapshot()
	var got *node.LLMConfig
	for _, n := range snap.Nodes {
		if n.ID == llm.ID {
			got = n.Config.(*node.LLMConfig)
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, "gpt-4o", got.Model)
	// Partial update semantics: the other fields survive.
	assert.Equal(t, "k", got.APIKey)

	// Absent id is a silent no-op.
	s.UpdateNodeConfig("ghost", "model", "x")
	assert.Equal(t, snap, s.Snapshot())
}

func TestStore_UpdateNodePosition(t *testing.T) {
	s, uq, _, _, _ := buildStore(t)
	s.UpdateNodePosition(uq.ID, Position{X: 99, Y: 100})

	snap := s.Snapshot()
	assert.Equal(t, Position{X: 99, Y: 100}, snap.Nodes[0].Position)
}

func TestStore_Snapshot_DefensiveCopy(t *testing.T) {
	s, uq, _, _, _ := buildStore(t)

	snap := s.Snapshot()
	snap.Nodes[0].Config.(*node.UserQueryConfig).Query = "mutated"
	snap.Nodes[0].Position = Position{X: -1, Y: -1}

	fresh := s.Snapshot()
	assert.Equal(t, "hi", fresh.Nodes[0].Config.(*node.UserQueryConfig).Query)
	assert.Equal(t, Position{X: 10, Y: 20}, fresh.Nodes[0].Position)
	assert.Equal(t, uq.ID, fresh.Nodes[0].ID)
}

func TestStore_Restore(t *testing.T) {
	s, uq, kb, _, _ := buildStore(t)
	_, err := s.AddEdge(uq.ID, "query", kb.ID, "query")
	require.NoError(t, err)
	saved := s.Snapshot()

	other := NewStore()
	other.Restore(saved)
	assert.Equal(t, saved, other.Snapshot())

	// Restore replaces, not merges.
	other.Restore(EmptySnapshot())
	assert.Empty(t, other.Snapshot().Nodes)
	assert.Empty(t, other.Snapshot().Edges)

	// Mutations after restore keep working against the rebuilt index.
	other.Restore(saved)
	other.RemoveNode(uq.ID)
	assert.Len(t, other.Snapshot().Nodes, 3)
	assert.Empty(t, other.Snapshot().Edges)
}
