package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Options selects and configures the front end.
type Options struct {
	Plain      bool
	Theme      string
	WordWrap   int
	DefaultPDF string
	In         io.Reader
	Out        io.Writer
}

// Run starts the TUI when In is a terminal and Plain is not set, otherwise the
// line-mode loop. It blocks until the user leaves or ctx is cancelled.
func Run(ctx context.Context, h Handler, opts Options) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	plain := opts.Plain || !isTerminal(opts.In)
	view, err := NewView(opts.Theme, opts.WordWrap, plain)
	if err != nil {
		return err
	}

	if plain {
		return RunPlain(ctx, h, view, opts.In, opts.Out, opts.DefaultPDF)
	}
	return runTUI(ctx, h, view, opts)
}

func runTUI(ctx context.Context, h Handler, view *View, opts Options) error {
	// The program dies with ctx (SIGTERM); Ctrl+C arrives as a key and only
	// cancels reqCtx so the farewell can still be printed.
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(reqCtx, cancel, h, view, opts.DefaultPDF)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(opts.In),
		tea.WithOutput(opts.Out),
		tea.WithoutSignalHandler(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintln(opts.Out, view.Farewell(true))
			return nil
		}
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
