package session

import "strings"

// DefaultPDFName is used by /pdf when no filename is given.
const DefaultPDFName = "output.pdf"

// CommandKind classifies one line of input.
type CommandKind int

const (
	// CommandIgnore is blank input; it is dropped without side effects.
	CommandIgnore CommandKind = iota
	// CommandExit ends the loop.
	CommandExit
	// CommandExportPDF renders the current document to Filename.
	CommandExportPDF
	// CommandPrompt sends Text to the model.
	CommandPrompt
)

// String returns the kind name used in logs.
func (k CommandKind) String() string {
	switch k {
	case CommandIgnore:
		return "ignore"
	case CommandExit:
		return "exit"
	case CommandExportPDF:
		return "export_pdf"
	case CommandPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// Command is the parsed form of one input line.
type Command struct {
	Kind     CommandKind
	Text     string // CommandPrompt only
	Filename string // CommandExportPDF only, already normalised
}

// ParseCommand classifies a raw input line. defaultPDF is the export filename
// used when /pdf has no argument; empty means DefaultPDFName.
func ParseCommand(line, defaultPDF string) Command {
	input := strings.TrimSpace(line)
	if input == "" {
		return Command{Kind: CommandIgnore}
	}

	lower := strings.ToLower(input)
	if lower == "/exit" {
		return Command{Kind: CommandExit}
	}

	if strings.HasPrefix(lower, "/pdf") {
		name := ""
		if _, rest, ok := strings.Cut(input, " "); ok {
			name = strings.TrimSpace(rest)
		}
		if name == "" {
			name = defaultPDF
		}
		if name == "" {
			name = DefaultPDFName
		}
		return Command{Kind: CommandExportPDF, Filename: NormalizePDFName(name)}
	}

	return Command{Kind: CommandPrompt, Text: input}
}

// NormalizePDFName appends ".pdf" unless name already ends with it (any case).
// Applying it twice gives the same result as applying it once.
func NormalizePDFName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}
