package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"quickfind/internal/ui/input/types"
)

// InputTransformer turns the input handler's mode into view data
type InputTransformer struct {
	mode      types.Mode
	prompt    string
	textInput textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer(textInput textinput.Model) *InputTransformer {
	return &InputTransformer{
		mode:      types.ModeNormal,
		textInput: textInput,
	}
}

// SetMode sets the current input mode and its prompt
func (it *InputTransformer) SetMode(mode types.Mode, prompt string) {
	it.mode = mode
	it.prompt = prompt
}

// GetInputText returns the current text input string for the view
func (it *InputTransformer) GetInputText() string {
	switch it.mode {
	case types.ModeSearch, types.ModePrice, types.ModeRating:
		return it.prompt + it.textInput.View()
	}
	return ""
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case types.ModeSearch:
		return "search"
	case types.ModePrice:
		return "price"
	case types.ModeRating:
		return "rating"
	case types.ModeSort:
		return "sort"
	case types.ModeStoreSelect:
		return "stores"
	default:
		return ""
	}
}
