package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokerhand/internal/deck"
)

// Styles contains all styling for terminal output
type Styles struct {
	Header    lipgloss.Style
	HandInfo  lipgloss.Style
	Actions   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Prompt    lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w. Plain output drops every escape
// sequence, for logs, pipes and tests.
func NewRenderer(w io.Writer, plain bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles builds the styles on renderer r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Card renders a card in its suit colour
func (s Styles) Card(c deck.Card) string {
	if c.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}

// Cards renders cards separated by spaces, or "--" when there are none
func (s Styles) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return s.Info.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = s.Card(c)
	}
	return strings.Join(parts, " ")
}
