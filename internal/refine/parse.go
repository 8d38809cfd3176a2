package refine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber extracts a float from a display string such as "$1,099.00" or "4.5".
// Every rune other than a digit, '.' or '-' is dropped before parsing.
// Empty, malformed or non-finite input yields 0.
func ParseNumber(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParsePriceRange reads a "min-max" bound as typed into the price prompt.
// A blank string clears the range and an empty side is unbounded, so
// "-50" means up to 50 and "20-" means 20 or more.
func ParsePriceRange(s string) (*PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return nil, fmt.Errorf("price range %q: expected min-max", s)
	}

	min, max := 0.0, math.MaxFloat64
	if strings.TrimSpace(lo) != "" {
		v, err := parseBound(lo)
		if err != nil {
			return nil, fmt.Errorf("price range %q: %w", s, err)
		}
		min = v
	}
	if strings.TrimSpace(hi) != "" {
		v, err := parseBound(hi)
		if err != nil {
			return nil, fmt.Errorf("price range %q: %w", s, err)
		}
		max = v
	}
	return NewPriceRange(min, max), nil
}

// ParseMinRating reads the rating prompt. Blank clears the threshold.
func ParseMinRating(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil, fmt.Errorf("rating %q: not a number", s)
	}
	if v < 0 || v > 5 {
		return nil, fmt.Errorf("rating %q: must be between 0 and 5", s)
	}
	return &v, nil
}

func parseBound(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("bad bound %q", strings.TrimSpace(s))
	}
	return v, nil
}
