package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"quickfind/internal/ui/input/types"
)

// PriceMode prompts for a min-max price range
type PriceMode struct {
	TextInputMode
}

func NewPriceMode(ti *textinput.Model) *PriceMode {
	return &PriceMode{
		TextInputMode: NewTextInputMode(types.ModePrice, "price", "Price range (min-max, blank clears): ", ti),
	}
}

// RatingMode prompts for a minimum rating
type RatingMode struct {
	TextInputMode
}

func NewRatingMode(ti *textinput.Model) *RatingMode {
	return &RatingMode{
		TextInputMode: NewTextInputMode(types.ModeRating, "rating", "Minimum rating (0-5, blank clears): ", ti),
	}
}
