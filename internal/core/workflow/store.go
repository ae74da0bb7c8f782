package workflow

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stackweave/stackweave/internal/core/node"
)

// Store holds the live node/edge set for one workflow and applies the
// structural mutations the editor collaborator produces. Mutations are
// atomic with respect to the gesture that triggered them; every
// operation either succeeds or leaves the store unchanged.
// PRINCIPLES:
// - SRP: Structure only; executability lives in pkg/validation
// - KISS: Slice + index map, insertion order preserved
type Store struct {
	mu    sync.Mutex
	nodes []Node
	index map[string]int
	edges []Edge

	// newID is swappable in tests for deterministic ids.
	newID func() string
}

// NewStore creates an empty workflow store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
		newID: uuid.NewString,
	}
}

// AddNode places a new node of the given kind on the canvas. The config
// is the kind's default merged with initial, fresh id assigned, ids are
// never reused within a session. The only possible failure is a kind
// outside the registry, which the sanctioned palette cannot produce.
func (s *Store) AddNode(kind node.Kind, pos Position, initial map[string]any) (Node, error) {
	d, err := node.Describe(kind)
	if err != nil {
		return Node{}, err
	}

	merged, err := node.ConfigToMap(d.DefaultConfig())
	if err != nil {
		return Node{}, fmt.Errorf("default config for %q: %w", kind, err)
	}
	for k, v := range initial {
		merged[k] = v
	}
	cfg, err := node.ConfigFromMap(kind, merged)
	if err != nil {
		return Node{}, fmt.Errorf("initial config for %q: %w", kind, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Node{ID: s.newID(), Kind: kind, Position: pos, Config: cfg}
	s.index[n.ID] = len(s.nodes)
	s.nodes = append(s.nodes, n)
	return n.Clone(), nil
}

// RemoveNode deletes the node and every edge incident to it, as source
// or target. No-op if the id is absent.
func (s *Store) RemoveNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[nodeID]
	if !ok {
		return
	}
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	delete(s.index, nodeID)
	for j := i; j < len(s.nodes); j++ {
		s.index[s.nodes[j].ID] = j
	}

	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.SourceNodeID == nodeID || e.TargetNodeID == nodeID {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
}

// UpdateNodeConfig replaces one config field, preserving all others.
// Silent no-op if the id is absent or the value cannot be applied to
// the typed field.
func (s *Store) UpdateNodeConfig(nodeID, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[nodeID]
	if !ok {
		return
	}
	cfg, err := node.SetConfigField(s.nodes[i].Config, key, value)
	if err != nil {
		return
	}
	s.nodes[i].Config = cfg
}

// UpdateNodePosition records a canvas move reported by the rendering
// collaborator. No-op if the id is absent.
func (s *Store) UpdateNodePosition(nodeID string, pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[nodeID]; ok {
		s.nodes[i].Position = pos
	}
}

// AddEdge connects an output port of the source node to an input port
// of the target node. Both nodes must exist and declare the named ports
// in the correct direction; anything else fails with
// ErrInvalidPortReference and leaves the edge set unchanged. Duplicate
// edges over the same 4-tuple are permitted, mirroring the lenient
// connect-per-gesture behavior of the collaborator.
func (s *Store) AddEdge(sourceNodeID, sourcePort, targetNodeID, targetPort string) (Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, ok := s.index[sourceNodeID]
	if !ok {
		return Edge{}, fmt.Errorf("%w: source node %q not found", ErrInvalidPortReference, sourceNodeID)
	}
	ti, ok := s.index[targetNodeID]
	if !ok {
		return Edge{}, fmt.Errorf("%w: target node %q not found", ErrInvalidPortReference, targetNodeID)
	}

	sd, err := node.Describe(s.nodes[si].Kind)
	if err != nil {
		return Edge{}, err
	}
	td, err := node.Describe(s.nodes[ti].Kind)
	if err != nil {
		return Edge{}, err
	}
	if !sd.HasOutput(sourcePort) {
		return Edge{}, fmt.Errorf("%w: %q is not an output port of %s", ErrInvalidPortReference, sourcePort, sd.Kind)
	}
	if !td.HasInput(targetPort) {
		return Edge{}, fmt.Errorf("%w: %q is not an input port of %s", ErrInvalidPortReference, targetPort, td.Kind)
	}

	e := Edge{
		ID:           s.newID(),
		SourceNodeID: sourceNodeID,
		SourcePort:   sourcePort,
		TargetNodeID: targetNodeID,
		TargetPort:   targetPort,
	}
	s.edges = append(s.edges, e)
	return e, nil
}

// RemoveEdge deletes one edge. No-op if the id is absent.
func (s *Store) RemoveEdge(edgeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.edges {
		if e.ID == edgeID {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return
		}
	}
}

// Snapshot returns an immutable deep copy of the current node/edge set.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Nodes: make([]Node, len(s.nodes)),
		Edges: make([]Edge, len(s.edges)),
	}
	for i, n := range s.nodes {
		snap.Nodes[i] = n.Clone()
	}
	copy(snap.Edges, s.edges)
	return snap
}

// Restore replaces the entire node/edge set with the snapshot's. Port
// references are not re-checked: restore trusts the persisted source,
// since it was produced by a prior Snapshot.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := snap.Clone()
	s.nodes = clone.Nodes
	s.edges = clone.Edges
	s.index = make(map[string]int, len(s.nodes))
	for i, n := range s.nodes {
		s.index[n.ID] = i
	}
}
