package html2pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Conversion factors to inches.
const (
	mmPerInch = 25.4
	cmPerInch = 2.54
	pxPerInch = 96.0
	ptPerInch = 72.0
)

// UnitToInches parses a CSS-style length value ("10mm", "2.54cm", "96px",
// "1in", "72pt") and converts it to inches. A bare number is treated as
// millimeters, matching the legacy converter's default unit.
func UnitToInches(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidUnit)
	}

	// Split the numeric part from the trailing unit suffix.
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		i--
	}
	num, unit := s[:i], strings.ToLower(strings.TrimSpace(s[i:]))

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}

	switch unit {
	case "", "mm":
		return v / mmPerInch, nil
	case "cm":
		return v / cmPerInch, nil
	case "px":
		return v / pxPerInch, nil
	case "in":
		return v, nil
	case "pt":
		return v / ptPerInch, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit in %q", ErrInvalidUnit, s)
	}
}

// Viewport holds browser viewport dimensions in pixels.
type Viewport struct {
	Width  int
	Height int
}

// ParseViewportSize parses a "WxH" viewport string such as "1280x720".
func ParseViewportSize(s string) (Viewport, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Viewport{}, fmt.Errorf("%w: %q (want WxH)", ErrInvalidViewport, s)
	}

	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Viewport{}, fmt.Errorf("%w: bad width in %q", ErrInvalidViewport, s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Viewport{}, fmt.Errorf("%w: bad height in %q", ErrInvalidViewport, s)
	}

	return Viewport{Width: width, Height: height}, nil
}
