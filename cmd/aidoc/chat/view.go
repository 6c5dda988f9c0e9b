package chat

import (
	"errors"
	"fmt"
	"strings"

	"aidoc/cmd/aidoc/ui"
	llm "aidoc/internal/chat"
	"aidoc/internal/config"
	"aidoc/internal/session"

	"github.com/charmbracelet/glamour"
)

const (
	promptLabel     = "You> "
	documentHeading = "--- Current Document ---"
	documentFooter  = "------------------------"
)

// View turns session outcomes into terminal text. It holds no state besides
// the styles and the Markdown renderer, so both front ends share it.
type View struct {
	styles   ui.Styles
	renderer *glamour.TermRenderer
}

// NewView builds a view. Plain views use the notty glamour style and no colors.
func NewView(theme string, wrap int, plain bool) (*View, error) {
	styles := ui.NewStyles(ui.ThemeFor(theme))
	styleOpt := glamourStyle(theme)
	if plain {
		styles = ui.PlainStyles()
		styleOpt = glamour.WithStylePath("notty")
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &View{styles: styles, renderer: renderer}, nil
}

func glamourStyle(theme string) glamour.TermRendererOption {
	switch theme {
	case config.ThemeLight, config.ThemeDark:
		return glamour.WithStylePath(theme)
	default:
		return glamour.WithAutoStyle()
	}
}

// Styles returns the lipgloss styles in use.
func (v *View) Styles() ui.Styles {
	return v.styles
}

// Banner is printed once at start-up.
func (v *View) Banner() string {
	var b strings.Builder
	b.WriteString(v.styles.Banner.Render("aidoc - AI Document Generator"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Describe the document you want, then refine it with follow-up prompts."))
	b.WriteString("\n")
	b.WriteString(v.styles.Command.Render("/pdf [filename]"))
	b.WriteString(v.styles.Muted.Render("  export the current document (default output.pdf)"))
	b.WriteString("\n")
	b.WriteString(v.styles.Command.Render("/exit"))
	b.WriteString(v.styles.Muted.Render("            quit"))
	return b.String()
}

// Echo renders a submitted line the way it appeared at the prompt.
func (v *View) Echo(line string) string {
	return v.styles.Prompt.Render(promptLabel) + v.styles.UserInput.Render(line)
}

// Status is the transient indicator shown while a command runs.
func (v *View) Status(kind session.CommandKind) string {
	switch kind {
	case session.CommandPrompt:
		return "Fetching response..."
	case session.CommandExportPDF:
		return "Generating PDF..."
	default:
		return ""
	}
}

// InputError reports a line that could not be used; the loop carries on.
func (v *View) InputError(err error) string {
	return v.styles.Error.Render("Error: " + errText(err))
}

// Farewell is printed when the loop stops.
func (v *View) Farewell(interrupted bool) string {
	if interrupted {
		return v.styles.Farewell.Render("Process interrupted. Goodbye!")
	}
	return v.styles.Farewell.Render("Goodbye!")
}

// Document renders Markdown between separator lines.
func (v *View) Document(markdown string) string {
	rendered, err := v.renderer.Render(markdown)
	if err != nil {
		rendered = markdown
	}
	return v.styles.Separator.Render(documentHeading) + "\n" +
		strings.TrimRight(rendered, "\n") + "\n" +
		v.styles.Separator.Render(documentFooter)
}

// Outcome renders one handled command. An empty string means print nothing.
func (v *View) Outcome(o session.Outcome) string {
	switch o.Kind {
	case session.OutcomeNone:
		return ""
	case session.OutcomeExit:
		return v.Farewell(false)
	case session.OutcomeInterrupted:
		return v.Farewell(true)
	case session.OutcomeDocument:
		return v.Document(o.Document)
	case session.OutcomeExported:
		return v.styles.Success.Render("Success! PDF saved to: " + o.Path)
	case session.OutcomeEmptyDocument:
		return v.styles.Warning.Render("Warning: " + errText(o.Err))
	case session.OutcomeRemoteError:
		msg := v.styles.Error.Render("Could not fetch response: " + errText(o.Err))
		var rerr *llm.RemoteError
		if errors.As(o.Err, &rerr) {
			msg += "\n" + v.styles.Muted.Render(rerr.Hint())
		}
		return msg
	case session.OutcomeRenderError:
		return v.styles.Error.Render("Error: " + errText(o.Err))
	default:
		return v.styles.Error.Render("An unexpected error occurred: "+errText(o.Err)) +
			"\n" + v.styles.Muted.Render("Continuing...")
	}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
