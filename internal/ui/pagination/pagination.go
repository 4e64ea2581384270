// Package pagination renders a bounded window of page indicators.
//
// The control works with zero-based selected indices. ToPage and Selected
// are the only conversions to and from the one-based pages used everywhere
// else.
package pagination

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultPageRange   = 5
	DefaultMarginPages = 1

	BreakLabel    = "..."
	PreviousLabel = "←"
	NextLabel     = "→"
)

// ToPage converts a zero-based selected index to a one-based page
func ToPage(selected int) int {
	return selected + 1
}

// Selected converts a one-based page to a zero-based selected index
func Selected(page int) int {
	return page - 1
}

// ItemKind distinguishes page indicators from break markers
type ItemKind int

const (
	ItemPage ItemKind = iota
	ItemBreak
)

// Item is one visible element of the page window
type Item struct {
	Kind     ItemKind
	Selected int // zero-based index, only for ItemPage
	Active   bool
}

// Label returns the text shown for the item
func (i Item) Label() string {
	if i.Kind == ItemBreak {
		return BreakLabel
	}
	return strconv.Itoa(ToPage(i.Selected))
}

// Model is the pagination control state
type Model struct {
	PageCount   int
	PageRange   int // pages shown around the selected one
	MarginPages int // pages always shown at each end
	selected    int

	ActiveStyle   lipgloss.Style
	PageStyle     lipgloss.Style
	DisabledStyle lipgloss.Style
}

// New creates a control with the given window sizes
func New(pageRange, marginPages int) Model {
	if pageRange < 1 {
		pageRange = DefaultPageRange
	}
	if marginPages < 0 {
		marginPages = DefaultMarginPages
	}
	return Model{
		PageRange:     pageRange,
		MarginPages:   marginPages,
		ActiveStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("99")).Padding(0, 1),
		PageStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		DisabledStyle: lipgloss.NewStyle().Faint(true).Padding(0, 1),
	}
}

// ForcePage mirrors the current one-based page and page count into the control
func (m *Model) ForcePage(page, pageCount int) {
	m.PageCount = pageCount
	m.selected = m.clamp(Selected(page))
}

// SelectedIndex returns the zero-based selected index
func (m Model) SelectedIndex() int {
	return m.selected
}

// Visible reports whether the control should be rendered at all
func (m Model) Visible() bool {
	return m.PageCount > 1
}

// Next returns the one-based page after the current one
func (m Model) Next() (int, bool) {
	if m.selected >= m.PageCount-1 {
		return 0, false
	}
	return ToPage(m.selected + 1), true
}

// Previous returns the one-based page before the current one
func (m Model) Previous() (int, bool) {
	if m.selected <= 0 {
		return 0, false
	}
	return ToPage(m.selected - 1), true
}

// First returns the first one-based page
func (m Model) First() (int, bool) {
	if m.PageCount < 1 || m.selected == 0 {
		return 0, false
	}
	return ToPage(0), true
}

// Last returns the last one-based page
func (m Model) Last() (int, bool) {
	if m.PageCount < 1 || m.selected == m.PageCount-1 {
		return 0, false
	}
	return ToPage(m.PageCount - 1), true
}

// Items computes the visible page window. The selected page is surrounded by
// PageRange pages, MarginPages pages are kept at both ends and every gap
// collapses into a single break marker.
func (m Model) Items() []Item {
	if m.PageCount <= 0 {
		return nil
	}

	items := make([]Item, 0, m.PageRange+2*m.MarginPages+2)
	page := func(index int) Item {
		return Item{Kind: ItemPage, Selected: index, Active: index == m.selected}
	}

	if m.PageCount <= m.PageRange {
		for index := 0; index < m.PageCount; index++ {
			items = append(items, page(index))
		}
		return items
	}

	half := float64(m.PageRange) / 2
	selected := float64(m.selected)
	leftSide := half
	rightSide := float64(m.PageRange) - leftSide

	if selected > float64(m.PageCount)-half {
		rightSide = float64(m.PageCount - m.selected)
		leftSide = float64(m.PageRange) - rightSide
	} else if selected < half {
		leftSide = selected
		rightSide = float64(m.PageRange) - leftSide
	}

	// The first page has nothing on its left, so the window shifts right by one
	upper := rightSide
	if m.selected == 0 && m.PageRange > 1 {
		upper = rightSide - 1
	}

	for index := 0; index < m.PageCount; index++ {
		p := ToPage(index)
		i := float64(index)

		switch {
		case p <= m.MarginPages:
			items = append(items, page(index))
		case p > m.PageCount-m.MarginPages:
			items = append(items, page(index))
		case i >= selected-leftSide && i <= selected+upper:
			items = append(items, page(index))
		case len(items) > 0 && items[len(items)-1].Kind != ItemBreak:
			items = append(items, Item{Kind: ItemBreak})
		}
	}

	return items
}

// View renders the control on a single line, or nothing when hidden
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	parts := make([]string, 0, m.PageRange+4)

	if _, ok := m.Previous(); ok {
		parts = append(parts, m.PageStyle.Render(PreviousLabel))
	} else {
		parts = append(parts, m.DisabledStyle.Render(PreviousLabel))
	}

	for _, item := range m.Items() {
		switch {
		case item.Kind == ItemBreak:
			parts = append(parts, m.DisabledStyle.Render(item.Label()))
		case item.Active:
			parts = append(parts, m.ActiveStyle.Render(item.Label()))
		default:
			parts = append(parts, m.PageStyle.Render(item.Label()))
		}
	}

	if _, ok := m.Next(); ok {
		parts = append(parts, m.PageStyle.Render(NextLabel))
	} else {
		parts = append(parts, m.DisabledStyle.Render(NextLabel))
	}

	return strings.Join(parts, "")
}

func (m Model) clamp(selected int) int {
	if selected < 0 {
		return 0
	}
	if m.PageCount > 0 && selected > m.PageCount-1 {
		return m.PageCount - 1
	}
	return selected
}
