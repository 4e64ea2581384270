package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"moviegrip/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.PageAction{Direction: "next"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.PageAction{Direction: "prev"}}, true

	case tea.KeyEnter:
		// Open the focused movie in the detail overlay
		if ctx.TotalItems() > 0 {
			return []types.Action{types.SelectAction{Index: -1}}, true
		}
		return nil, false
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "h":
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case "l":
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case "n", "]":
		if ctx.TotalPages() > 1 {
			return []types.Action{types.PageAction{Direction: "next"}}, true
		}
		return nil, true

	case "p", "[":
		if ctx.TotalPages() > 1 {
			return []types.Action{types.PageAction{Direction: "prev"}}, true
		}
		return nil, true

	case "g":
		if ctx.TotalPages() > 1 {
			return []types.Action{types.PageAction{Direction: "first"}}, true
		}
		return nil, true

	case "G":
		if ctx.TotalPages() > 1 {
			return []types.Action{types.PageAction{Direction: "last"}}, true
		}
		return nil, true

	case "/", "s":
		// Enter search mode, prefilled with the current query
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.Query()}}, true

	case "r":
		// Refetch the current page
		if ctx.Query() != "" {
			return []types.Action{types.RefreshAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "H":
		return []types.Action{types.OpenHelpPagerAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
