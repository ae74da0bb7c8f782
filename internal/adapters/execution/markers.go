package execution

import "strings"

// DefaultErrorMarkers are the substrings the execution service embeds
// in result text when a provider call fails semantically. The list is
// data, not control flow: extending the taxonomy is an append here.
// Entries mirror the provider error strings the service emits.
var DefaultErrorMarkers = []string{
	"Quota exceeded",
	"Rate limit exceeded",
	"Invalid API key",
	"billing disabled",
	"Bad request",
	"Bad input",
	"unsupported model",
	"Model not found",
	"Connection failed",
	"OpenAI Error:",
	"Gemini Error:",
	"No valid LLM model",
}

// matchesMarker reports whether text contains any marker,
// case-insensitively.
func matchesMarker(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
