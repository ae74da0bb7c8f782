// Package node provides the static catalog of pipeline stage kinds
// following Clean Architecture principles with zero external dependencies.
package node

// Kind identifies one of the four pipeline stage types. The string
// values are the wire values the execution service expects.
type Kind string

const (
	// KindUserQuery represents the query intake stage
	KindUserQuery Kind = "userQuery"
	// KindKnowledgeBase represents the knowledge retrieval stage
	KindKnowledgeBase Kind = "knowledgeBase"
	// KindLLM represents the language-model inference stage
	KindLLM Kind = "llm"
	// KindOutput represents the output rendering stage
	KindOutput Kind = "output"
)

// PortSpec describes a named, directional attachment point on a node.
type PortSpec struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

// FieldRule names a config field that must be non-blank for the owning
// node kind to be executable, paired with the remediation message shown
// to the user when it is not.
type FieldRule struct {
	Key     string
	Message string
}

// Descriptor is the immutable port and field contract for one node kind.
// PRINCIPLES:
// - KISS: Pure data, no behavior beyond lookups
// - SRP: Only describes a kind, never holds node state
type Descriptor struct {
	Kind      Kind
	Label     string
	Inputs    []PortSpec
	Outputs   []PortSpec
	Required  []FieldRule
	newConfig func() Config
}

// DefaultConfig returns a fresh config populated with the kind's defaults.
func (d Descriptor) DefaultConfig() Config {
	return d.newConfig()
}

// HasInput reports whether the kind declares an input port with the given name.
func (d Descriptor) HasInput(name string) bool {
	for _, p := range d.Inputs {
		if p.Name == name {
			return true
		}
	}
	return false
}

// HasOutput reports whether the kind declares an output port with the given name.
func (d Descriptor) HasOutput(name string) bool {
	for _, p := range d.Outputs {
		if p.Name == name {
			return true
		}
	}
	return false
}
