// Package stackweave is a façade to assemble the workflow core without
// importing internal packages directly. The default runtime uses the
// in-memory blob store and is suitable for local usage and tests.
package stackweave

import (
	"context"
	"net/http"
	"time"

	"github.com/stackweave/stackweave/internal/adapters/execution"
	"github.com/stackweave/stackweave/internal/adapters/repository/memory"
	"github.com/stackweave/stackweave/internal/adapters/repository/sqlite"
	"github.com/stackweave/stackweave/internal/app/dto"
	"github.com/stackweave/stackweave/internal/app/persistence"
	"github.com/stackweave/stackweave/internal/core/node"
	"github.com/stackweave/stackweave/internal/core/store"
	"github.com/stackweave/stackweave/internal/core/workflow"
	"github.com/stackweave/stackweave/pkg/validation"
)

// Re-export core types for convenience
type (
	Kind        = node.Kind
	Node        = workflow.Node
	Edge        = workflow.Edge
	Position    = workflow.Position
	Snapshot    = workflow.Snapshot
	Store       = workflow.Store
	ChatMessage = dto.ChatMessage
	Outcome     = execution.Outcome
	Session     = execution.Session
	Document    = execution.Document
)

const (
	KindUserQuery     = node.KindUserQuery
	KindKnowledgeBase = node.KindKnowledgeBase
	KindLLM           = node.KindLLM
	KindOutput        = node.KindOutput
)

// NewStore creates an empty workflow store.
func NewStore() *Store { return workflow.NewStore() }

// Option configures the runtime's execution client.
type Option = execution.Option

// WithRequestTimeout bounds each call to the execution service.
func WithRequestTimeout(d time.Duration) Option {
	return execution.WithHTTPClient(&http.Client{Timeout: d})
}

// Runtime wires persistence, validation, and the execution client
// around a single blob store.
type Runtime struct {
	Workflows   *persistence.Workflows
	Transcripts *persistence.Transcripts
	Index       *persistence.Index
	Validator   *validation.Validator
	Client      *execution.Client
}

// NewRuntime constructs a runtime over the in-memory blob store.
func NewRuntime(serviceURL string, opts ...Option) *Runtime {
	return newRuntime(serviceURL, memory.NewBlobStore(), opts)
}

// NewRuntimeSQLite constructs a runtime over a SQLite blob store at path.
func NewRuntimeSQLite(serviceURL, path string, opts ...Option) (*Runtime, error) {
	blobs, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return newRuntime(serviceURL, blobs, opts), nil
}

func newRuntime(serviceURL string, blobs store.Blob, opts []Option) *Runtime {
	return &Runtime{
		Workflows:   persistence.NewWorkflows(blobs),
		Transcripts: persistence.NewTranscripts(blobs),
		Index:       persistence.NewIndex(blobs),
		Validator:   validation.New(),
		Client:      execution.NewClient(serviceURL, opts...),
	}
}

// OpenWorkflow restores a workflow store from its persisted snapshot,
// or an empty one when nothing was saved.
func (rt *Runtime) OpenWorkflow(ctx context.Context, workflowID string) *Store {
	s := workflow.NewStore()
	s.Restore(rt.Workflows.Load(ctx, workflowID))
	return s
}

// Execute validates the snapshot and, if executable, submits it. When
// validation fails, the failed Result is returned with a nil outcome.
func (rt *Runtime) Execute(ctx context.Context, workflowID string, snap Snapshot, doc *Document) (validation.Result, *Outcome) {
	res := rt.Validator.First(snap)
	if !res.OK {
		return res, nil
	}
	out := rt.Client.Execute(ctx, snap, workflowID, doc)
	if out.Session != nil {
		// Best effort: a transcript that fails to persist still chats.
		_ = rt.Transcripts.Save(ctx, workflowID, out.Session.Messages())
	}
	return res, &out
}
