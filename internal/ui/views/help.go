package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections(k KeyMap) []helpSection {
	return []helpSection{
		{"Results", []key.Binding{k.Navigate, k.Select, k.Refresh}},
		{"Search", []key.Binding{k.Search}},
		{"Pages", []key.Binding{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage}},
		{"Movie Details", []key.Binding{k.Close, k.Overview}},
		{"Other", []key.Binding{k.Help, k.HelpPager, k.Quit}},
	}
}

// HelpContent renders the full help text, used by the popup and the pager
func HelpContent(k KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("moviegrip Help"))
	help.WriteString("\n")

	sections := helpSections(k)
	for i, section := range sections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		if i < len(sections)-1 {
			help.WriteString("\n")
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Results come from The Movie Database (TMDB)."))

	return help.String()
}

// renderHelpContent returns the window of help lines that fits in height
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(HelpContent(r.keys), "\n")
	totalLines := len(lines)

	// Calculate visible window (account for popup border and padding)
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	lines = lines[scrollOffset:endLine]

	if scrollOffset > 0 {
		lines[0] = r.styles.Scroll.Render("↑ (more above)")
	}
	if endLine < totalLines {
		lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
	}

	return strings.Join(lines, "\n")
}
