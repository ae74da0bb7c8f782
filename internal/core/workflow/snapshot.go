// Package workflow provides the core workflow graph entities: nodes,
// edges, and the mutable store the editor collaborator drives.
package workflow

import (
	"encoding/json"

	"github.com/stackweave/stackweave/internal/core/node"
)

// Position is the 2-D canvas coordinate owned by the rendering
// collaborator. The core passes it through untouched.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one stage placed on the canvas.
type Node struct {
	ID       string      `json:"id"`
	Kind     node.Kind   `json:"kind"`
	Position Position    `json:"position"`
	Config   node.Config `json:"config"`
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	if n.Config != nil {
		out.Config = n.Config.Clone()
	}
	return out
}

// nodeJSON is the persistence/wire shape of a node; config goes out as
// the flat field mapping rather than a typed record.
type nodeJSON struct {
	ID       string         `json:"id"`
	Kind     node.Kind      `json:"kind"`
	Position Position       `json:"position"`
	Config   map[string]any `json:"config"`
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	cfg, err := node.ConfigToMap(n.Config)
	if err != nil {
		return nil, err
	}
	return json.Marshal(nodeJSON{ID: n.ID, Kind: n.Kind, Position: n.Position, Config: cfg})
}

// UnmarshalJSON implements json.Unmarshaler. The typed config record is
// rebuilt from the flat mapping; unrecognized keys are retained.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cfg, err := node.ConfigFromMap(raw.Kind, raw.Config)
	if err != nil {
		return err
	}
	n.ID = raw.ID
	n.Kind = raw.Kind
	n.Position = raw.Position
	n.Config = cfg
	return nil
}

// Edge connects an output port of one node to an input port of another.
type Edge struct {
	ID           string `json:"id"`
	SourceNodeID string `json:"sourceNodeId"`
	SourcePort   string `json:"sourcePort"`
	TargetNodeID string `json:"targetNodeId"`
	TargetPort   string `json:"targetPort"`
}

// Snapshot is the complete, detached node/edge state of a workflow at
// one instant. It is the unit of persistence and, after projection, the
// unit sent to the execution service.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Nodes: make([]Node, len(s.Nodes)),
		Edges: make([]Edge, len(s.Edges)),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = n.Clone()
	}
	copy(out.Edges, s.Edges)
	return out
}

// Empty reports whether the snapshot holds no nodes and no edges.
func (s Snapshot) Empty() bool {
	return len(s.Nodes) == 0 && len(s.Edges) == 0
}

// EmptySnapshot returns the snapshot substituted for missing or
// corrupt persisted data.
func EmptySnapshot() Snapshot {
	return Snapshot{Nodes: []Node{}, Edges: []Edge{}}
}

// FindFirst returns the first node of the given kind in insertion
// order, or nil if none exists.
func (s Snapshot) FindFirst(kind node.Kind) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].Kind == kind {
			return &s.Nodes[i]
		}
	}
	return nil
}
