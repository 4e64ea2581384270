package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"moviegrip/internal/moviequery"
	"moviegrip/internal/tmdb"
	"moviegrip/internal/ui/pagination"
	"moviegrip/internal/ui/state"
	"moviegrip/internal/ui/views"
)

// ImageURLFunc turns a relative image path into an absolute URL
type ImageURLFunc func(path, size string) string

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	pager            *pagination.Model
	imageURL         ImageURLFunc
	width            int
	height           int
	help             help.Model
	spinner          string
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model. pager is kept in sync with the
// page on screen every time a view state is built.
func NewViewModel(appState *state.AppState, pager *pagination.Model, imageURL ImageURLFunc, textInput textinput.Model) *ViewModel {
	return &ViewModel{
		state:            appState,
		pager:            pager,
		imageURL:         imageURL,
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model
func (vm *ViewModel) SetHelp(helpModel help.Model) {
	vm.help = helpModel
}

// SetSpinner sets the rendered spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode InputMode) {
	vm.inputTransformer.SetMode(mode)
}

// SetPrompt sets the search prompt
func (vm *ViewModel) SetPrompt(prompt string) {
	vm.inputTransformer.SetPrompt(prompt)
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.inputTransformer.textInput = textInput
}

// BuildViewState creates a ViewState for rendering result, the observed
// state of the current key
func (vm *ViewModel) BuildViewState(result moviequery.Result) views.ViewState {
	vs := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Query:            vm.state.Query,
		InputMode:        vm.inputTransformer.GetInputModeString(),
		InputPrompt:      vm.inputTransformer.GetPrompt(),
		TextInput:        vm.inputTransformer.GetInputText(),
		InputHint:        vm.state.InputHint,
		Page:             vm.state.Page,
		Loading:          result.IsLoading(),
		Fetching:         result.IsFetching,
		Placeholder:      result.IsPlaceholderData,
		Error:            result.IsError(),
		Spinner:          vm.spinner,
		Cursor:           vm.state.Cursor,
		Columns:          vm.state.GridColumns,
		StatusMessage:    vm.state.StatusMessage,
		Selected:         vm.state.Selected,
		ShowHelp:         vm.state.ShowHelp,
		HelpScrollOffset: vm.state.HelpScrollOffset,
		Toast:            vm.state.Toast,
		HelpModel:        vm.help,
	}

	if data := result.Data; data != nil {
		vs.Movies = data.Results
		vs.TotalPages = data.TotalPages
		vs.TotalResults = data.TotalResults
	}

	if vm.pager != nil {
		vm.pager.ForcePage(vm.state.Page, vs.TotalPages)
		if len(vs.Movies) > 0 {
			vs.Pagination = vm.pager.View()
		}
	}

	if vs.Selected != nil && vm.imageURL != nil {
		vs.PosterURL = vm.imageURL(vs.Selected.PosterPath, tmdb.PosterSizeLarge)
	}

	return vs
}
