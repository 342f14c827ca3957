package watermark

import (
	"image"
	"strings"
)

// Anchor names a placement region for the watermark text.
type Anchor string

// The five supported anchors.
const (
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorCenter      Anchor = "center"
)

// Margin is the fixed distance in pixels between the text and the image
// edge for the corner anchors.
const Margin = 20

// ParseAnchor maps an anchor name to an Anchor, case-insensitively.
// Unrecognized input falls back to top-left rather than failing; anchor
// placement is cosmetic and must never abort processing.
func ParseAnchor(s string) Anchor {
	switch Anchor(strings.ToLower(strings.TrimSpace(s))) {
	case AnchorTopLeft:
		return AnchorTopLeft
	case AnchorTopRight:
		return AnchorTopRight
	case AnchorBottomLeft:
		return AnchorBottomLeft
	case AnchorBottomRight:
		return AnchorBottomRight
	case AnchorCenter:
		return AnchorCenter
	default:
		return AnchorTopLeft
	}
}

// Place computes the top-left draw coordinate for text of size
// (textW, textH) on an image of size (imgW, imgH).
//
// No clamping is performed: when the image is smaller than the text plus
// margins the result may be negative or out of bounds, and the text is
// clipped by the drawer. This mirrors the historical behavior; see the
// known-edge-case note in DESIGN.md.
func (a Anchor) Place(imgW, imgH, textW, textH int) image.Point {
	switch a {
	case AnchorTopRight:
		return image.Point{X: imgW - textW - Margin, Y: Margin}
	case AnchorBottomLeft:
		return image.Point{X: Margin, Y: imgH - textH - Margin}
	case AnchorBottomRight:
		return image.Point{X: imgW - textW - Margin, Y: imgH - textH - Margin}
	case AnchorCenter:
		return image.Point{X: (imgW - textW) / 2, Y: (imgH - textH) / 2}
	default: // AnchorTopLeft and anything unrecognized
		return image.Point{X: Margin, Y: Margin}
	}
}
