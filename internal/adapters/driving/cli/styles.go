package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// outputStyles colours command output. All styles are plain unless the
// output is an interactive terminal.
type outputStyles struct {
	header lipgloss.Style
	muted  lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
	err    lipgloss.Style
}

func stylesFor(w io.Writer) outputStyles {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		plain := lipgloss.NewStyle()
		return outputStyles{header: plain, muted: plain, high: plain, medium: plain, low: plain, err: plain}
	}

	return outputStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		high:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		medium: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// priority renders p in its priority colour.
func (s outputStyles) priority(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return s.high.Render(p.String())
	case domain.PriorityMedium:
		return s.medium.Render(p.String())
	default:
		return s.low.Render(p.String())
	}
}
