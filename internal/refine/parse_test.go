package refine

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"dollar", "$99.99", 99.99},
		{"thousands separator", "$1,099.00", 1099},
		{"plain rating", "4.5", 4.5},
		{"negative", "-12.5", -12.5},
		{"not a number", "N/A", 0},
		{"empty", "", 0},
		{"only separators", "..", 0},
		{"dangling minus", "-", 0},
		{"two numbers collapse to invalid", "10-20", 0},
		{"rating with suffix", "4.8 stars", 4.8},
		{"unicode currency", "€ 15", 15},
		{"overflow", strings.Repeat("9", 400), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		in      string
		want    *PriceRange
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"10-50", &PriceRange{Min: 10, Max: 50}, false},
		{"$10 - $1,000", &PriceRange{Min: 10, Max: 1000}, false},
		{"-50", &PriceRange{Min: 0, Max: 50}, false},
		{"20-", &PriceRange{Min: 20, Max: math.MaxFloat64}, false},
		{"80-20", &PriceRange{Min: 20, Max: 80}, false},
		{"cheap", nil, true},
		{"a-b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriceRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMinRating(t *testing.T) {
	got, err := ParseMinRating(" 4.5 ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4.5, *got)

	got, err = ParseMinRating("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseMinRating("6")
	assert.Error(t, err)
	_, err = ParseMinRating("good")
	assert.Error(t, err)
}
