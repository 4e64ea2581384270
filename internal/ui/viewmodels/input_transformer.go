package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// InputMode represents the different input modes
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeSearch
	InputModeOverlay
)

// InputTransformer handles input mode transformations
type InputTransformer struct {
	mode      InputMode
	prompt    string
	textInput textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      InputModeNormal,
		textInput: textInput,
	}
}

// SetMode sets the current input mode
func (it *InputTransformer) SetMode(mode InputMode) {
	it.mode = mode
}

// SetPrompt sets the prompt shown before the text input
func (it *InputTransformer) SetPrompt(prompt string) {
	it.prompt = prompt
}

// GetPrompt returns the prompt for the active text mode
func (it *InputTransformer) GetPrompt() string {
	if it.mode != InputModeSearch {
		return ""
	}
	if it.prompt == "" {
		return "Search: "
	}
	return it.prompt
}

// GetInputText returns the rendered text input, empty outside text modes
func (it *InputTransformer) GetInputText() string {
	if it.mode != InputModeSearch {
		return ""
	}
	return it.textInput.View()
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case InputModeSearch:
		return "search"
	case InputModeOverlay:
		return "overlay"
	default:
		return ""
	}
}
