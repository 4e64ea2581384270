package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"moviegrip/internal/ui/input/types"
)

// OverlayMode is active while the detail overlay is open. It swallows every
// key it does not handle so nothing behind the overlay can be reached.
type OverlayMode struct{}

func NewOverlayMode() *OverlayMode {
	return &OverlayMode{}
}

func (m *OverlayMode) Name() string {
	return "overlay"
}

func (m *OverlayMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *OverlayMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *OverlayMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "backspace":
		return []types.Action{
			types.CloseOverlayAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "o", "O":
		return []types.Action{types.OpenOverviewAction{}}, true
	}

	return nil, true
}
