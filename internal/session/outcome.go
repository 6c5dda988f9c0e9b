package session

import "time"

// OutcomeKind classifies the result of handling one command.
type OutcomeKind int

const (
	// OutcomeNone: nothing happened (blank input).
	OutcomeNone OutcomeKind = iota
	// OutcomeExit: the user asked to leave.
	OutcomeExit
	// OutcomeDocument: the model replied and the document was replaced.
	OutcomeDocument
	// OutcomeExported: a PDF was written to Path.
	OutcomeExported
	// OutcomeEmptyDocument: export requested before any document exists.
	OutcomeEmptyDocument
	// OutcomeRemoteError: the chat service could not be reached or answered badly.
	OutcomeRemoteError
	// OutcomeRenderError: Markdown, PDF or file stage of the export failed.
	OutcomeRenderError
	// OutcomeInterrupted: the run was cancelled while the command was in flight.
	OutcomeInterrupted
	// OutcomeUnexpected: anything else, including recovered panics.
	OutcomeUnexpected
)

// String returns the kind name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeExit:
		return "exit"
	case OutcomeDocument:
		return "document"
	case OutcomeExported:
		return "exported"
	case OutcomeEmptyDocument:
		return "empty_document"
	case OutcomeRemoteError:
		return "remote_error"
	case OutcomeRenderError:
		return "render_error"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Outcome is what a front end needs to present one handled command.
type Outcome struct {
	Kind     OutcomeKind
	Document string // OutcomeDocument
	Path     string // OutcomeExported, absolute
	Err      error  // error kinds and OutcomeEmptyDocument
	Duration time.Duration
}

// Terminal reports whether the loop must stop after this outcome.
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeExit || o.Kind == OutcomeInterrupted
}

// Failed reports whether the outcome should be shown as an error.
func (o Outcome) Failed() bool {
	switch o.Kind {
	case OutcomeRemoteError, OutcomeRenderError, OutcomeUnexpected:
		return true
	}
	return false
}
