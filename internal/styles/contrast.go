package styles

import (
	"math"
	"strconv"
)

// RGB is a color with float channels in [0, 255].
type RGB struct {
	R, G, B float64
}

// minIconContrast is the WCAG ratio below which the icon tint is replaced.
const minIconContrast = 3.0

// ParseHex parses #RRGGBB or #RRGGBBAA, ignoring alpha.
func ParseHex(hex string) (RGB, bool) {
	if !IsValidHexColor(hex) {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex[1:7], 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{
		R: float64(v >> 16 & 0xFF),
		G: float64(v >> 8 & 0xFF),
		B: float64(v & 0xFF),
	}, true
}

// ReadableOn returns fg if it is legible on bg, otherwise fallback.
// Unparseable colors are passed through unchanged.
func ReadableOn(fg, bg, fallback string) string {
	f, ok1 := ParseHex(fg)
	b, ok2 := ParseHex(bg)
	if !ok1 || !ok2 {
		return fg
	}
	if contrastRatio(f, b) >= minIconContrast {
		return fg
	}
	return fallback
}

func contrastRatio(fg, bg RGB) float64 {
	l1 := relativeLuminance(fg)
	l2 := relativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(c RGB) float64 {
	r := linearize(c.R / 255.0)
	g := linearize(c.G / 255.0)
	b := linearize(c.B / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
