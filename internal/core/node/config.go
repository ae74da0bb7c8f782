package node

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Config is the per-kind typed configuration record carried by a node.
// Each kind owns its own struct; unrecognized fields supplied by the
// rendering collaborator or a persisted blob are kept in Extra so they
// survive a snapshot/restore round-trip, but validation never reads them.
// PRINCIPLES:
// - ISP: Two methods, nothing a caller does not need
// - SRP: Configs hold values; merging and codec live in this package
type Config interface {
	Kind() Kind
	Clone() Config
}

// UserQueryConfig configures a query intake node.
type UserQueryConfig struct {
	Query           string `json:"query"`
	PlaceholderText string `json:"placeholderText"`

	Extra map[string]any `json:"-"`
}

// Kind implements Config.
func (*UserQueryConfig) Kind() Kind { return KindUserQuery }

// Clone implements Config.
func (c *UserQueryConfig) Clone() Config {
	out := *c
	out.Extra = cloneExtra(c.Extra)
	return &out
}

// KnowledgeBaseConfig configures a knowledge retrieval node. FileName is
// the display name of the uploaded document only; the document bytes are
// attached at execution time and are never part of the config.
type KnowledgeBaseConfig struct {
	FileName       string `json:"fileName"`
	EmbeddingModel string `json:"embeddingModel"`
	APIKey         string `json:"apiKey"`

	Extra map[string]any `json:"-"`
}

// Kind implements Config.
func (*KnowledgeBaseConfig) Kind() Kind { return KindKnowledgeBase }

// Clone implements Config.
func (c *KnowledgeBaseConfig) Clone() Config {
	out := *c
	out.Extra = cloneExtra(c.Extra)
	return &out
}

// LLMConfig configures an inference node.
type LLMConfig struct {
	Model         string  `json:"model"`
	APIKey        string  `json:"apiKey"`
	Prompt        string  `json:"prompt"`
	Temperature   float64 `json:"temperature"`
	WebSearchTool bool    `json:"webSearchTool"`
	SerpAPIKey    string  `json:"serpApiKey"`

	Extra map[string]any `json:"-"`
}

// Kind implements Config.
func (*LLMConfig) Kind() Kind { return KindLLM }

// Clone implements Config.
func (c *LLMConfig) Clone() Config {
	out := *c
	out.Extra = cloneExtra(c.Extra)
	return &out
}

// OutputConfig configures an output rendering node.
type OutputConfig struct {
	OutputFormat string `json:"outputFormat"`

	Extra map[string]any `json:"-"`
}

// Kind implements Config.
func (*OutputConfig) Kind() Kind { return KindOutput }

// Clone implements Config.
func (c *OutputConfig) Clone() Config {
	out := *c
	out.Extra = cloneExtra(c.Extra)
	return &out
}

func cloneExtra(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ConfigToMap flattens a config into the field-name keyed mapping used
// on the wire and in the persistence blob, extras included.
func ConfigToMap(c Config) (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	var extra map[string]any
	switch v := c.(type) {
	case *UserQueryConfig:
		extra = v.Extra
	case *KnowledgeBaseConfig:
		extra = v.Extra
	case *LLMConfig:
		extra = v.Extra
	case *OutputConfig:
		extra = v.Extra
	}
	for k, v := range extra {
		if _, known := m[k]; !known {
			m[k] = v
		}
	}
	return m, nil
}

// ConfigFromMap builds a typed config for kind out of a field mapping.
// Recognized keys populate the struct; everything else lands in Extra.
func ConfigFromMap(kind Kind, m map[string]any) (Config, error) {
	d, err := Describe(kind)
	if err != nil {
		return nil, err
	}
	cfg := d.DefaultConfig()

	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	known := knownKeys(cfg)
	var extra map[string]any
	for k, v := range m {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	switch v := cfg.(type) {
	case *UserQueryConfig:
		v.Extra = extra
	case *KnowledgeBaseConfig:
		v.Extra = extra
	case *LLMConfig:
		v.Extra = extra
	case *OutputConfig:
		v.Extra = extra
	}
	return cfg, nil
}

// SetConfigField replaces one field by its wire name, preserving all
// other fields. Unrecognized keys are tolerated and kept as extras.
func SetConfigField(c Config, key string, value any) (Config, error) {
	m, err := ConfigToMap(c)
	if err != nil {
		return nil, err
	}
	m[key] = value
	return ConfigFromMap(c.Kind(), m)
}

// ConfigField reads one field by its wire name.
func ConfigField(c Config, key string) (any, bool) {
	m, err := ConfigToMap(c)
	if err != nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// knownKeys derives the recognized wire field names from json tags.
func knownKeys(c Config) map[string]struct{} {
	t := reflect.TypeOf(c).Elem()
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		keys[name] = struct{}{}
	}
	return keys
}
