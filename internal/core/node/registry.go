package node

// registry is the static kind catalog. It is populated once at package
// init and never mutated afterwards; all lookups go through Describe.
// Port names mirror the connection handles the rendering collaborator
// draws, so edge references can be checked against them directly.
var registry = map[Kind]Descriptor{
	KindUserQuery: {
		Kind:    KindUserQuery,
		Label:   "User Query",
		Outputs: []PortSpec{{Name: "query"}},
		Required: []FieldRule{
			{Key: "query", Message: "User Query node must have a query."},
		},
		newConfig: func() Config { return &UserQueryConfig{} },
	},
	KindKnowledgeBase: {
		Kind:    KindKnowledgeBase,
		Label:   "Knowledge Base",
		Inputs:  []PortSpec{{Name: "query"}},
		Outputs: []PortSpec{{Name: "context"}},
		newConfig: func() Config {
			return &KnowledgeBaseConfig{EmbeddingModel: "text-embedding-3-large"}
		},
	},
	KindLLM: {
		Kind:    KindLLM,
		Label:   "LLM (OpenAI)",
		Inputs:  []PortSpec{{Name: "context"}, {Name: "query"}},
		Outputs: []PortSpec{{Name: "output"}},
		Required: []FieldRule{
			{Key: "apiKey", Message: "LLM node must have an API Key."},
			{Key: "model", Message: "LLM node must have a model selected."},
			{Key: "prompt", Message: "LLM node must have a prompt."},
		},
		newConfig: func() Config {
			return &LLMConfig{
				Model:       "gpt-4o-mini",
				Prompt:      "You are a helpful PDF assistant. Use web search if the PDF lacks context",
				Temperature: 0.75,
			}
		},
	},
	KindOutput: {
		Kind:   KindOutput,
		Label:  "Output",
		Inputs: []PortSpec{{Name: "input"}},
		newConfig: func() Config {
			return &OutputConfig{OutputFormat: "plain-text"}
		},
	},
}

// kindOrder gives Kinds a stable palette ordering.
var kindOrder = []Kind{KindUserQuery, KindKnowledgeBase, KindLLM, KindOutput}

// Describe returns the descriptor for a kind.
// Fails with ErrUnknownNodeKind for anything outside the catalog.
func Describe(kind Kind) (Descriptor, error) {
	d, ok := registry[kind]
	if !ok {
		return Descriptor{}, ErrUnknownNodeKind
	}
	return d, nil
}

// Kinds returns all registered kinds in palette order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}
