package watermark

import (
	"image/color"
	"strconv"
	"strings"
)

// palette maps supported color names to their RGB values.
// The extra names beyond the primary set (orange, purple, gray) exist
// because earlier versions of the tool accepted them.
var palette = map[string]color.NRGBA{
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 255, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"yellow":  {R: 255, G: 255, B: 0, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
	"orange":  {R: 255, G: 165, B: 0, A: 255},
	"purple":  {R: 128, G: 0, B: 128, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
}

// colorWhite is the fallback for every unrecognized specification.
var colorWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ResolveColor maps a color specification to an opaque NRGBA value.
// The specification is either a case-insensitive palette name or a
// comma-separated triple of integers each in [0, 255], e.g. "200,100,50".
//
// Invalid or unrecognized input resolves to white rather than failing:
// watermarking must never abort solely due to a cosmetic misconfiguration.
func ResolveColor(spec string) color.NRGBA {
	name := strings.ToLower(strings.TrimSpace(spec))
	if c, ok := palette[name]; ok {
		return c
	}

	if strings.Contains(name, ",") {
		if c, ok := parseTriple(name); ok {
			return c
		}
	}

	return colorWhite
}

// parseTriple parses an "r,g,b" specification with channels in [0, 255].
func parseTriple(spec string) (color.NRGBA, bool) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return color.NRGBA{}, false
	}

	var channels [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, false
		}
		channels[i] = uint8(v)
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, true
}
