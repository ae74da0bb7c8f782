// Package execution submits validated workflows to the remote execution
// service and layers the follow-up chat exchange on top of it.
//
// Every failure mode is folded into a typed outcome; nothing in this
// package returns an error to the caller or panics. The remote service
// is a collaborator outside our control and its responses are treated
// as arbitrary data.
package execution

// Status classifies the result of an execution attempt.
type Status string

const (
	// StatusSuccess means the pipeline ran and produced result text.
	StatusSuccess Status = "success"
	// StatusKnownServiceError means the pipeline ran but reported a
	// semantic failure (quota, bad key, unknown model, ...). The text is
	// information for the user, not a system fault.
	StatusKnownServiceError Status = "known_service_error"
	// StatusEmptyResult means the response carried no result text.
	StatusEmptyResult Status = "empty_result"
	// StatusTransportError means the call itself failed: network,
	// non-2xx status, or a malformed body.
	StatusTransportError Status = "transport_error"
)

// Outcome is the interpreted result of one execution attempt.
type Outcome struct {
	Status Status
	// Text is the result text on success, or the service's error text
	// verbatim for a known service error.
	Text string
	// Session is the chat session seeded with the result text. Non-nil
	// only on success.
	Session *Session
	// Err carries the transport detail for logging. It is never shown
	// to the user as-is.
	Err error
	// Cancelled is set when Cancel was called while the request was in
	// flight. The outcome is still interpreted, but callers should
	// suppress their reaction to it.
	Cancelled bool
}

// UserMessage renders the outcome the way it should be surfaced.
func (o Outcome) UserMessage() string {
	switch o.Status {
	case StatusSuccess, StatusKnownServiceError:
		return o.Text
	case StatusEmptyResult:
		return "The workflow ran but produced no output."
	default:
		return "Could not reach the execution service. Please try again."
	}
}
