package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"aidoc/internal/session"
)

// maxLineSize bounds a single prompt line read in plain mode.
const maxLineSize = 1024 * 1024

// errLineTooLong marks a line that was discarded for exceeding maxLineSize.
var errLineTooLong = fmt.Errorf("input line too long (limit %d KiB), ignored", maxLineSize/1024)

type inputLine struct {
	text string
	err  error // nil or errLineTooLong
}

// RunPlain drives the line-mode loop: one line from in, one outcome to out.
// It returns nil on /exit, end of input and interrupt.
func RunPlain(ctx context.Context, h Handler, view *View, in io.Reader, out io.Writer, defaultPDF string) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan inputLine)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		r := bufio.NewReaderSize(in, 64*1024)
		for {
			text, err := readLine(r, maxLineSize)
			if err != nil && !errors.Is(err, errLineTooLong) {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-done:
				return
			}
		}
	}()

	fmt.Fprintln(out, view.Banner())
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out, view.Farewell(true))
			return nil
		}
		fmt.Fprint(out, promptLabel)

		var line inputLine
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			fmt.Fprintln(out, view.Farewell(true))
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-readErr:
					return fmt.Errorf("read input: %w", err)
				default:
				}
				fmt.Fprintln(out, view.Farewell(false))
				return nil
			}
			line = l
		}

		if line.err != nil {
			fmt.Fprintln(out, view.InputError(line.err))
			continue
		}

		cmd := session.ParseCommand(line.text, defaultPDF)
		if status := view.Status(cmd.Kind); status != "" {
			fmt.Fprintln(out, status)
		}
		outcome := h.Handle(ctx, cmd)
		if text := view.Outcome(outcome); text != "" {
			fmt.Fprintln(out, text)
		}
		if outcome.Terminal() {
			return nil
		}
	}
}

// readLine reads one line without its terminator. A line longer than limit is
// consumed to its end and reported as errLineTooLong.
func readLine(r *bufio.Reader, limit int) (string, error) {
	var buf []byte
	tooLong := false
	started := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			// A final line that filled the buffer exactly ends at EOF.
			if errors.Is(err, io.EOF) && started {
				break
			}
			return "", err
		}
		started = true
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}
