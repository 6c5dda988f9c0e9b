package chat

import (
	"errors"
	"strings"
	"testing"

	llm "aidoc/internal/chat"
	"aidoc/internal/export"
	"aidoc/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestView_Outcome(t *testing.T) {
	v := newPlainView(t)

	tests := []struct {
		name    string
		outcome session.Outcome
		want    []string
	}{
		{
			name:    "none prints nothing",
			outcome: session.Outcome{Kind: session.OutcomeNone},
		},
		{
			name:    "exit",
			outcome: session.Outcome{Kind: session.OutcomeExit},
			want:    []string{"Goodbye!"},
		},
		{
			name:    "interrupted",
			outcome: session.Outcome{Kind: session.OutcomeInterrupted},
			want:    []string{"Process interrupted. Goodbye!"},
		},
		{
			name:    "document between separators",
			outcome: session.Outcome{Kind: session.OutcomeDocument, Document: "# Poem\n\nRoses are red."},
			want:    []string{documentHeading, "Poem", "Roses are red.", documentFooter},
		},
		{
			name:    "exported path",
			outcome: session.Outcome{Kind: session.OutcomeExported, Path: "/work/poem.pdf"},
			want:    []string{"Success! PDF saved to: /work/poem.pdf"},
		},
		{
			name:    "empty document warning",
			outcome: session.Outcome{Kind: session.OutcomeEmptyDocument, Err: export.ErrEmptyDocument},
			want:    []string{"Warning:", "no document to export yet"},
		},
		{
			name: "remote error with hint",
			outcome: session.Outcome{Kind: session.OutcomeRemoteError, Err: &llm.RemoteError{
				Reason: llm.ReasonNetwork, Err: errors.New("dial tcp: refused"),
			}},
			want: []string{"Could not fetch response", "dial tcp: refused", "internet connection"},
		},
		{
			name: "render error",
			outcome: session.Outcome{Kind: session.OutcomeRenderError, Err: &export.RenderError{
				Stage: export.StagePDF, Path: "x.pdf", Err: errors.New("chrome gone"),
			}},
			want: []string{"Error: failed to generate PDF", "chrome gone"},
		},
		{
			name:    "unexpected continues",
			outcome: session.Outcome{Kind: session.OutcomeUnexpected, Err: errors.New("panic: boom")},
			want:    []string{"unexpected error", "panic: boom", "Continuing..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Outcome(tt.outcome)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestView_Status(t *testing.T) {
	v := newPlainView(t)
	assert.Equal(t, "Fetching response...", v.Status(session.CommandPrompt))
	assert.Equal(t, "Generating PDF...", v.Status(session.CommandExportPDF))
	assert.Empty(t, v.Status(session.CommandExit))
}

func TestView_BannerListsCommands(t *testing.T) {
	banner := newPlainView(t).Banner()
	assert.True(t, strings.Contains(banner, "aidoc"))
	assert.Contains(t, banner, "/pdf [filename]")
	assert.Contains(t, banner, "/exit")
}
