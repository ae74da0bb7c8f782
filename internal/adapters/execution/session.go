package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stackweave/stackweave/internal/app/dto"
	"github.com/stackweave/stackweave/internal/ctxlog"
)

// Session is a request/response chat exchange scoped to one workflow,
// holding an append-only ordered transcript. Failures become assistant
// messages in the transcript; they never escape the session boundary.
//
// A session tolerates one outstanding Send at a time. Not invoking Send
// concurrently is a caller contract, not internally enforced.
type Session struct {
	workflowID string
	client     *Client
	messages   []dto.ChatMessage
}

// newSession opens a session seeded with one assistant message carrying
// the execution result text.
func (c *Client) newSession(workflowID, seed string) *Session {
	return &Session{
		workflowID: workflowID,
		client:     c,
		messages:   []dto.ChatMessage{{Role: dto.RoleAssistant, Content: seed}},
	}
}

// ResumeSession rebuilds a session around a previously persisted
// transcript.
func (c *Client) ResumeSession(workflowID string, transcript []dto.ChatMessage) *Session {
	msgs := make([]dto.ChatMessage, len(transcript))
	copy(msgs, transcript)
	return &Session{workflowID: workflowID, client: c, messages: msgs}
}

// WorkflowID returns the workflow this session is scoped to.
func (s *Session) WorkflowID() string { return s.workflowID }

// Messages returns a copy of the transcript in order.
func (s *Session) Messages() []dto.ChatMessage {
	out := make([]dto.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send appends the user message, submits it to the chat endpoint, and
// appends the assistant's answer. On any failure the assistant message
// carries a formatted error string instead. The appended assistant
// message is returned. No retry, no backpressure.
func (s *Session) Send(ctx context.Context, text string) dto.ChatMessage {
	log := ctxlog.FromContext(ctx)
	s.messages = append(s.messages, dto.ChatMessage{Role: dto.RoleUser, Content: text})

	answer, err := s.client.chat(ctx, dto.ChatRequest{Query: text, WorkflowID: s.workflowID})
	var reply dto.ChatMessage
	if err != nil {
		log.Warn("chat request failed", "workflow_id", s.workflowID, "error", err)
		reply = dto.ChatMessage{Role: dto.RoleAssistant, Content: fmt.Sprintf("Error: %v", err)}
	} else {
		reply = dto.ChatMessage{Role: dto.RoleAssistant, Content: answer}
	}
	s.messages = append(s.messages, reply)
	return reply
}

// chat performs one POST to the chat endpoint.
func (c *Client) chat(ctx context.Context, reqBody dto.ChatRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chat endpoint returned %s", resp.Status)
	}

	var body dto.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Answer, nil
}
