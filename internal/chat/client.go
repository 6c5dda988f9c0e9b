// Package chat adapts a remote Gemini chat session to the document loop.
// The remote session owns the conversation history; the adapter only holds
// the handle and forwards one user turn per call.
package chat

import (
	"context"
	"errors"
	"fmt"
)

// SystemInstruction steers the model towards bare Markdown documents.
// It is attached once when the session is created.
const SystemInstruction = `You are a professional document architect.
When asked to generate a document (resume, proposal, report, etc.),
reply with ONLY the Markdown content of the document.
Do not add conversational filler such as "Sure" or "Here is your document".
Use clear Markdown headers (#, ##), bullet points and tables where appropriate.
When asked to change the document, reply with the complete updated document.`

// ErrEmptyPrompt is returned when SendMessage is called without text.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Client sends one user turn to the ongoing remote conversation and returns the reply.
type Client interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Failure reasons recorded on RemoteError.
const (
	ReasonNetwork   = "network"
	ReasonAuth      = "auth"
	ReasonAPI       = "api"
	ReasonTimeout   = "timeout"
	ReasonCanceled  = "canceled"
	ReasonMalformed = "malformed"
)

// RemoteError is any failure talking to the chat service or reading its reply.
// Callers can use errors.As to detect it; the document must be left untouched.
type RemoteError struct {
	Reason string
	Status int // HTTP status when the service answered, 0 otherwise
	Err    error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("chat request failed (%s, status %d): %v", e.Reason, e.Status, e.Err)
	}
	return fmt.Sprintf("chat request failed (%s): %v", e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Hint returns a short suggestion for the user based on the failure reason.
func (e *RemoteError) Hint() string {
	switch e.Reason {
	case ReasonAuth:
		return "Check that GEMINI_API_KEY holds a valid key."
	case ReasonTimeout:
		return "The service took too long to answer. Try again or ask for a shorter document."
	case ReasonMalformed:
		return "The model returned no text. Try rephrasing the prompt."
	default:
		return "Please check your internet connection or try a different prompt."
	}
}
