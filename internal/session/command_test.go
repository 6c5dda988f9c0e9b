package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"empty", "", Command{Kind: CommandIgnore}},
		{"whitespace", "  \t \n", Command{Kind: CommandIgnore}},
		{"exit", "/exit", Command{Kind: CommandExit}},
		{"exit any case", "  /EXIT ", Command{Kind: CommandExit}},
		{"exit with trailing text is a prompt", "/exit now", Command{Kind: CommandPrompt, Text: "/exit now"}},
		{"pdf default", "/pdf", Command{Kind: CommandExportPDF, Filename: "output.pdf"}},
		{"pdf any case", "/PDF", Command{Kind: CommandExportPDF, Filename: "output.pdf"}},
		{"pdf name", "/pdf report", Command{Kind: CommandExportPDF, Filename: "report.pdf"}},
		{"pdf name with suffix", "/pdf report.pdf", Command{Kind: CommandExportPDF, Filename: "report.pdf"}},
		{"pdf upper suffix", "/pdf REPORT.PDF", Command{Kind: CommandExportPDF, Filename: "REPORT.PDF"}},
		{"pdf name with spaces", "/pdf my  report", Command{Kind: CommandExportPDF, Filename: "my  report.pdf"}},
		{"pdf extra spaces", "/pdf   notes  ", Command{Kind: CommandExportPDF, Filename: "notes.pdf"}},
		{"pdf path", "/pdf out/cv", Command{Kind: CommandExportPDF, Filename: "out/cv.pdf"}},
		{"pdf prefix only", "/pdfx", Command{Kind: CommandExportPDF, Filename: "output.pdf"}},
		{"prompt", "Write a 2-line poem about the sea", Command{Kind: CommandPrompt, Text: "Write a 2-line poem about the sea"}},
		{"prompt keeps inner whitespace", "  make it   shorter\tplease  ", Command{Kind: CommandPrompt, Text: "make it   shorter\tplease"}},
		{"other slash text is a prompt", "/help", Command{Kind: CommandPrompt, Text: "/help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCommand(tt.line, "")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCommand(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseCommand_ConfiguredDefault(t *testing.T) {
	got := ParseCommand("/pdf", "document")
	want := Command{Kind: CommandExportPDF, Filename: "document.pdf"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePDFName_Idempotent(t *testing.T) {
	for _, name := range []string{"report", "report.pdf", "a.b", "x.PDF", ".pdf", "dir/file"} {
		once := NormalizePDFName(name)
		twice := NormalizePDFName(once)
		if once != twice {
			t.Errorf("NormalizePDFName not idempotent for %q: %q then %q", name, once, twice)
		}
	}
	if got := NormalizePDFName("report"); got != "report.pdf" {
		t.Errorf("NormalizePDFName(report) = %q", got)
	}
}

func TestCommandKind_String(t *testing.T) {
	if CommandExportPDF.String() != "export_pdf" {
		t.Errorf("unexpected name %q", CommandExportPDF.String())
	}
	if CommandKind(99).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}
