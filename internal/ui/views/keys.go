package views

import "github.com/charmbracelet/bubbles/key"

// KeyMap describes the bindings shown in the footer and the help popup
type KeyMap struct {
	Navigate  key.Binding
	Select    key.Binding
	Search    key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Refresh   key.Binding
	Close     key.Binding
	Overview  key.Binding
	Help      key.Binding
	HelpPager key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the bindings handled by the input modes
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Navigate:  key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↓↑→/hjkl", "move")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Search:    key.NewBinding(key.WithKeys("/", "s"), key.WithHelp("/", "search")),
		NextPage:  key.NewBinding(key.WithKeys("n", "]", "pgdown"), key.WithHelp("n/]", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "[", "pgup"), key.WithHelp("p/[", "prev page")),
		FirstPage: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last page")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch page")),
		Close:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "close details")),
		Overview:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "full overview")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		HelpPager: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help in pager")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Select, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Select, k.Search, k.Refresh},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage},
		{k.Close, k.Overview},
		{k.Help, k.HelpPager, k.Quit},
	}
}
