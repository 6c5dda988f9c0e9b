// Package session implements the document loop's dispatch core.
//
// A Session owns the current document and the two collaborators that act on
// it: the chat client, which produces documents, and the exporter, which turns
// them into PDF files. Front ends parse a line with ParseCommand, pass it to
// Handle, and present the returned Outcome. Handle never panics and never
// returns an error: every failure is classified into an Outcome.
//
// Architecture:
//
//	input line → ParseCommand → Handle → Outcome → front end
package session

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"aidoc/internal/chat"
	"aidoc/internal/document"
	"aidoc/internal/export"
	"aidoc/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exporter renders a Markdown document to a file and returns its absolute path.
type Exporter interface {
	Export(ctx context.Context, markdown, path string) (string, error)
}

// Session is the state of one interactive run.
type Session struct {
	id       string
	chat     chat.Client
	exporter Exporter
	doc      *document.Store
	logger   *zap.Logger
}

// New creates a session with an empty document.
func New(client chat.Client, exporter Exporter, logger *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		chat:     client,
		exporter: exporter,
		doc:      document.NewStore(),
		logger:   logging.For(logger, logging.CategorySession).With(zap.String("session", id)),
	}
}

// ID returns the random session identifier used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Document returns the current document text.
func (s *Session) Document() string {
	return s.doc.Get()
}

// Handle dispatches one command and reports what happened.
func (s *Session) Handle(ctx context.Context, cmd Command) (out Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recovered panic",
				zap.String("command", cmd.Kind.String()),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			out = Outcome{Kind: OutcomeUnexpected, Err: fmt.Errorf("panic: %v", r)}
		}
		out.Duration = time.Since(start)
	}()

	switch cmd.Kind {
	case CommandIgnore:
		return Outcome{Kind: OutcomeNone}
	case CommandExit:
		s.logger.Info("exit requested")
		return Outcome{Kind: OutcomeExit}
	case CommandExportPDF:
		return s.exportPDF(ctx, cmd.Filename)
	case CommandPrompt:
		return s.prompt(ctx, cmd.Text)
	default:
		return Outcome{Kind: OutcomeUnexpected, Err: fmt.Errorf("unknown command kind %d", cmd.Kind)}
	}
}

func (s *Session) prompt(ctx context.Context, text string) Outcome {
	s.logger.Debug("sending prompt", zap.Int("chars", len(text)))

	reply, err := s.chat.SendMessage(ctx, text)
	if err != nil {
		if interrupted(ctx) {
			return Outcome{Kind: OutcomeInterrupted, Err: err}
		}
		var rerr *chat.RemoteError
		if errors.As(err, &rerr) {
			s.logger.Warn("chat request failed", zap.String("reason", rerr.Reason), zap.Error(err))
			return Outcome{Kind: OutcomeRemoteError, Err: err}
		}
		s.logger.Error("chat client failed", zap.Error(err))
		return Outcome{Kind: OutcomeUnexpected, Err: err}
	}

	s.doc.Set(reply)
	s.logger.Info("document updated", zap.Int("chars", len(reply)))
	return Outcome{Kind: OutcomeDocument, Document: reply}
}

func (s *Session) exportPDF(ctx context.Context, filename string) Outcome {
	path, err := s.exporter.Export(ctx, s.doc.Get(), filename)
	if err != nil {
		if errors.Is(err, export.ErrEmptyDocument) {
			s.logger.Info("export skipped, no document")
			return Outcome{Kind: OutcomeEmptyDocument, Err: err}
		}
		if interrupted(ctx) {
			return Outcome{Kind: OutcomeInterrupted, Err: err}
		}
		var rerr *export.RenderError
		if errors.As(err, &rerr) {
			s.logger.Warn("export failed", zap.String("stage", rerr.Stage), zap.String("file", filename), zap.Error(err))
			return Outcome{Kind: OutcomeRenderError, Err: err}
		}
		s.logger.Error("exporter failed", zap.Error(err))
		return Outcome{Kind: OutcomeUnexpected, Err: err}
	}

	s.logger.Info("document exported", zap.String("path", path))
	return Outcome{Kind: OutcomeExported, Path: path}
}

// interrupted reports whether the run itself was cancelled. Timeouts inside a
// collaborator use their own contexts and are not interrupts.
func interrupted(ctx context.Context) bool {
	return ctx.Err() != nil
}
