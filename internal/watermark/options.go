package watermark

// Options is the immutable watermark configuration consumed by the
// pipeline. It is constructed once per run from defaults plus overrides
// and never mutated afterwards; a Processor captures the values it needs
// at construction time.
type Options struct {
	// FontSize is the text size in points. Must be positive.
	FontSize int

	// Color is the color specification, resolved lazily by ResolveColor:
	// a palette name or a comma-separated RGB triple. Invalid values
	// resolve to white.
	Color string

	// Anchor names the placement region for the text.
	Anchor Anchor

	// Opacity is the text opacity in [0, 1]. The rendered alpha is
	// round(Opacity * 255).
	Opacity float64

	// FontPath optionally points at a TrueType/OpenType font file.
	// When empty or unloadable, the processor falls back to a system
	// sans-serif, then to built-in fonts.
	FontPath string
}

// DefaultOptions returns the standard watermark appearance: 24pt white
// text at the bottom-right corner with 0.8 opacity.
func DefaultOptions() Options {
	return Options{
		FontSize: 24,
		Color:    "white",
		Anchor:   AnchorBottomRight,
		Opacity:  0.8,
	}
}
