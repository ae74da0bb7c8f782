package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/stackweave/stackweave/internal/app/dto"
	"github.com/stackweave/stackweave/internal/core/workflow"
	"github.com/stackweave/stackweave/internal/ctxlog"
)

// Client submits workflows to the remote execution service.
//
// One execution per workflow may be in flight at a time; concurrent
// Execute calls for the same workflow are a caller error and are not
// internally serialized.
type Client struct {
	baseURL string
	http    *http.Client
	markers []string

	mu       sync.Mutex
	inflight map[string]bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithErrorMarkers replaces the known-error marker list.
func WithErrorMarkers(markers []string) Option {
	return func(c *Client) { c.markers = markers }
}

// NewClient creates an execution client for the service at baseURL
// (e.g. "http://localhost:8000/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 60 * time.Second},
		markers:  DefaultErrorMarkers,
		inflight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document is an uploaded file forwarded to the knowledge retrieval
// stage. Only the name ever enters node config; the bytes travel with
// the execute request and are never persisted.
type Document struct {
	Name   string
	Reader io.Reader
}

// Execute projects the snapshot to its wire form, submits it, and
// interprets the response. Single attempt, no retry. It never returns
// a Go error: every failure mode is an outcome.
func (c *Client) Execute(ctx context.Context, snap workflow.Snapshot, workflowID string, doc *Document) Outcome {
	log := ctxlog.FromContext(ctx)

	c.setInFlight(workflowID, true)
	defer c.setInFlight(workflowID, false)

	body, contentType, err := c.buildExecuteBody(snap, workflowID, doc)
	if err != nil {
		log.Error("building execute request failed", "workflow_id", workflowID, "error", err)
		return c.finish(workflowID, Outcome{Status: StatusTransportError, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute-workflow", body)
	if err != nil {
		return c.finish(workflowID, Outcome{Status: StatusTransportError, Err: err})
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("execution request failed", "workflow_id", workflowID, "error", err)
		return c.finish(workflowID, Outcome{Status: StatusTransportError, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("execution service returned %s", resp.Status)
		log.Warn("execution rejected", "workflow_id", workflowID, "status", resp.StatusCode)
		return c.finish(workflowID, Outcome{Status: StatusTransportError, Err: err})
	}

	var result dto.ExecuteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Warn("malformed execution response", "workflow_id", workflowID, "error", err)
		return c.finish(workflowID, Outcome{Status: StatusTransportError, Err: err})
	}

	text := result.Text()
	switch {
	case text == "":
		log.Info("execution produced no output", "workflow_id", workflowID)
		return c.finish(workflowID, Outcome{Status: StatusEmptyResult})
	case matchesMarker(text, c.markers):
		log.Info("execution reported service error", "workflow_id", workflowID)
		return c.finish(workflowID, Outcome{Status: StatusKnownServiceError, Text: text})
	default:
		out := Outcome{Status: StatusSuccess, Text: text}
		out = c.finish(workflowID, out)
		if !out.Cancelled {
			out.Session = c.newSession(workflowID, text)
		}
		return out
	}
}

// Cancel marks the workflow's execution as no longer in flight. It is
// idempotent, never errors, and does not abort the underlying network
// call; it only tells the UI to stop reacting.
func (c *Client) Cancel(workflowID string) {
	c.setInFlight(workflowID, false)
}

// InFlight reports whether an execution for the workflow is in flight.
func (c *Client) InFlight(workflowID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[workflowID]
}

func (c *Client) setInFlight(workflowID string, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v {
		c.inflight[workflowID] = true
	} else {
		delete(c.inflight, workflowID)
	}
}

// finish stamps the outcome with whether the execution was cancelled
// while the request was out.
func (c *Client) finish(workflowID string, out Outcome) Outcome {
	out.Cancelled = !c.InFlight(workflowID)
	return out
}

// buildExecuteBody assembles the multipart form: workflow_id, the node
// projection (position stripped), the edge list unchanged, and the
// optional document.
func (c *Client) buildExecuteBody(snap workflow.Snapshot, workflowID string, doc *Document) (*bytes.Buffer, string, error) {
	nodes, err := dto.ProjectNodes(snap)
	if err != nil {
		return nil, "", err
	}
	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return nil, "", err
	}
	edgesJSON, err := json.Marshal(snap.Edges)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("workflow_id", workflowID); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("nodes", string(nodesJSON)); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("edges", string(edgesJSON)); err != nil {
		return nil, "", err
	}
	if doc != nil {
		part, err := w.CreateFormFile("file", doc.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, doc.Reader); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
