// Package export renders the current Markdown document to a styled PDF file.
//
// Pipeline: Markdown -> goldmark HTML -> bluemonday sanitising -> full page with
// the embedded stylesheet -> headless Chrome PDF -> atomic file write.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aidoc/internal/logging"

	"go.uber.org/zap"
)

// ErrEmptyDocument is returned when there is nothing to export. It is a warning:
// no file is created or modified.
var ErrEmptyDocument = errors.New("no document to export yet! Ask the AI to generate something first")

// Render stages recorded on RenderError.
const (
	StageMarkdown = "markdown"
	StagePDF      = "pdf"
	StageWrite    = "write"
)

// RenderError wraps a failure in one stage of the export pipeline.
type RenderError struct {
	Stage string
	Path  string
	Err   error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to generate PDF (%s stage): %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer prints a complete HTML document to PDF bytes.
type Renderer interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter converts Markdown documents to PDF files.
type Exporter struct {
	renderer Renderer
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates an exporter. A zero timeout leaves rendering bounded only by ctx.
func New(renderer Renderer, timeout time.Duration, logger *zap.Logger) *Exporter {
	return &Exporter{
		renderer: renderer,
		timeout:  timeout,
		logger:   logging.For(logger, logging.CategoryExport),
	}
}

// Export renders markdown to a PDF at path and returns the absolute path written.
// An existing file is replaced; on failure it is left as it was.
func (e *Exporter) Export(ctx context.Context, markdown, path string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyDocument
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &RenderError{Stage: StageWrite, Path: path, Err: err}
	}

	start := time.Now()

	body, err := ToHTML(markdown)
	if err != nil {
		return "", &RenderError{Stage: StageMarkdown, Path: abs, Err: err}
	}
	page := Page(Title(markdown), body)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	pdf, err := e.renderer.PrintPDF(ctx, page)
	if err != nil {
		return "", &RenderError{Stage: StagePDF, Path: abs, Err: err}
	}
	if len(pdf) == 0 {
		return "", &RenderError{Stage: StagePDF, Path: abs, Err: errors.New("renderer produced no output")}
	}

	if err := writeFileAtomic(abs, pdf); err != nil {
		return "", &RenderError{Stage: StageWrite, Path: abs, Err: err}
	}

	e.logger.Info("exported pdf",
		zap.String("path", abs),
		zap.Int("markdown_chars", len(markdown)),
		zap.Int("pdf_bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)))

	return abs, nil
}

// writeFileAtomic writes data to a temporary file next to path, syncs it, and
// renames it over path. Readers see either the old file or the complete new one.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
