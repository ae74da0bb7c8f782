// Package dto holds the wire shapes exchanged with the remote
// execution service.
package dto

import (
	"github.com/stackweave/stackweave/internal/core/node"
	"github.com/stackweave/stackweave/internal/core/workflow"
)

// WireNode is the execution projection of a node: position is
// presentation state, not pipeline state, and is dropped.
type WireNode struct {
	ID     string         `json:"id"`
	Kind   node.Kind      `json:"kind"`
	Config map[string]any `json:"config"`
}

// ProjectNodes converts snapshot nodes to their wire form.
func ProjectNodes(snap workflow.Snapshot) ([]WireNode, error) {
	out := make([]WireNode, len(snap.Nodes))
	for i, n := range snap.Nodes {
		cfg, err := node.ConfigToMap(n.Config)
		if err != nil {
			return nil, err
		}
		out[i] = WireNode{ID: n.ID, Kind: n.Kind, Config: cfg}
	}
	return out, nil
}

// ExecuteResponse is the body the execution service returns. The
// service is outside our control: either field may be absent, and
// anything else in the body is ignored.
type ExecuteResponse struct {
	LLMResponse string `json:"llm_response"`
	FinalOutput string `json:"final_output"`
}

// Text returns the result text, preferring the primary field and
// falling back to the secondary one.
func (r ExecuteResponse) Text() string {
	if r.LLMResponse != "" {
		return r.LLMResponse
	}
	return r.FinalOutput
}

// ChatRequest is the body for a follow-up chat exchange.
type ChatRequest struct {
	Query      string `json:"query"`
	WorkflowID string `json:"workflow_id"`
}

// ChatResponse is the chat endpoint's reply.
type ChatResponse struct {
	Answer string `json:"answer"`
}
