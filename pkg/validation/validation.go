// Package validation decides whether a workflow snapshot is executable.
//
// Checks run in a fixed order, from "nothing to run" through "missing
// required stage" to "stages present but disconnected", so a user fixing
// errors top to bottom converges in minimal iterations. First mirrors
// the stop-on-first-problem UX; All exists for callers that want an
// exhaustive report. Both share the same check list, and the list is
// data: extending it never touches control flow.
//
// Edge connectivity between intake and sink is deliberately not checked;
// only stage presence and required fields gate execution.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stackweave/stackweave/internal/core/node"
	"github.com/stackweave/stackweave/internal/core/workflow"
)

// Result reports executability. Reasons hold the human-readable
// remediation messages in check order; ok means no check failed.
type Result struct {
	OK      bool     `json:"ok"`
	Reasons []string `json:"reasons"`
}

// Check is one executability gate. Failed returns the remediation
// messages the check contributes, in order, or nothing when it passes.
type Check struct {
	Name   string
	Failed func(v *Validator, snap workflow.Snapshot) []string
}

// Validator runs the ordered check list over workflow snapshots.
// PRINCIPLES:
// - SRP: Inspects snapshots, never mutates them, never raises
// - DRY: Required-field rules come from the node registry, not per-kind
//   branches scattered through the checks
type Validator struct {
	checks []Check
	fields *validator.Validate
}

// New creates a validator with the standard check list.
func New() *Validator {
	fields := validator.New()
	// The collaborator trims user input on its side; mirror that here so
	// whitespace-only values fail the same way.
	_ = fields.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{checks: standardChecks(), fields: fields}
}

// First returns the first failing check's reason, matching the
// stop-on-first-problem UX. Repeated runs on the same snapshot produce
// the same message.
func (v *Validator) First(snap workflow.Snapshot) Result {
	for _, c := range v.checks {
		if reasons := c.Failed(v, snap); len(reasons) > 0 {
			return Result{OK: false, Reasons: reasons[:1]}
		}
	}
	return Result{OK: true, Reasons: []string{}}
}

// All runs every check and collects every reason, in check order.
func (v *Validator) All(snap workflow.Snapshot) Result {
	reasons := []string{}
	for _, c := range v.checks {
		reasons = append(reasons, c.Failed(v, snap)...)
	}
	return Result{OK: len(reasons) == 0, Reasons: reasons}
}

// blank reports whether a config field is missing, not a string, or
// whitespace-only.
func (v *Validator) blank(cfg node.Config, key string) bool {
	raw, ok := node.ConfigField(cfg, key)
	if !ok {
		return true
	}
	s, ok := raw.(string)
	if !ok {
		return true
	}
	return v.fields.Var(s, "notblank") != nil
}

// requiredFields checks the registry's field rules for one node,
// returning the message of each violated rule in declaration order.
func (v *Validator) requiredFields(n *workflow.Node) []string {
	d, err := node.Describe(n.Kind)
	if err != nil {
		return nil
	}
	var out []string
	for _, rule := range d.Required {
		if v.blank(n.Config, rule.Key) {
			out = append(out, rule.Message)
		}
	}
	return out
}

func standardChecks() []Check {
	return []Check{
		{
			Name: "has-nodes",
			Failed: func(_ *Validator, snap workflow.Snapshot) []string {
				if len(snap.Nodes) == 0 {
					return []string{"Add at least one node to the canvas."}
				}
				return nil
			},
		},
		{
			Name: "llm-present",
			Failed: func(_ *Validator, snap workflow.Snapshot) []string {
				if snap.FindFirst(node.KindLLM) == nil {
					return []string{"Add an LLM node."}
				}
				return nil
			},
		},
		{
			Name: "llm-required-fields",
			Failed: func(v *Validator, snap workflow.Snapshot) []string {
				llm := snap.FindFirst(node.KindLLM)
				if llm == nil {
					return nil // llm-present already reported it
				}
				return v.requiredFields(llm)
			},
		},
		{
			Name: "user-query",
			Failed: func(v *Validator, snap workflow.Snapshot) []string {
				uq := snap.FindFirst(node.KindUserQuery)
				if uq == nil {
					return []string{"User Query node must have a query."}
				}
				return v.requiredFields(uq)
			},
		},
		{
			Name: "output-present",
			Failed: func(_ *Validator, snap workflow.Snapshot) []string {
				if snap.FindFirst(node.KindOutput) == nil {
					return []string{"Add at least one Output node."}
				}
				return nil
			},
		},
		{
			Name: "has-edges",
			Failed: func(_ *Validator, snap workflow.Snapshot) []string {
				if len(snap.Edges) == 0 {
					return []string{"You must connect the nodes using edges."}
				}
				return nil
			},
		},
	}
}
