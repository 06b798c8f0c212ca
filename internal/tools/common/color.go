package common

import (
	"fmt"
	"strconv"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// ParseHexColor converts "#rrggbb" (or "rrggbb") into the API's RGB color
// wrapper, with channels scaled to [0, 1].
func ParseHexColor(hex string) (*docs.OptionalColor, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("expected a 6 digit hex color like '#1a2b3c', got %q", hex)
	}
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("expected a 6 digit hex color like '#1a2b3c', got %q", hex)
	}
	return &docs.OptionalColor{
		Color: &docs.Color{
			RgbColor: &docs.RgbColor{
				Red:   float64(value>>16&0xff) / 255.0,
				Green: float64(value>>8&0xff) / 255.0,
				Blue:  float64(value&0xff) / 255.0,
			},
		},
	}, nil
}
