package watermark

import (
	"errors"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// systemFontCandidates lists common sans-serif font locations checked when
// no explicit font path is configured.
var systemFontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// loadFace parses the font file at path and returns a face at the given
// size (72 DPI, full hinting).
func loadFace(path string, size int) (font.Face, error) {
	if path == "" {
		return nil, errors.New("font path is required")
	}
	data, err := os.ReadFile(path) //nolint:gosec // User-provided font path is intentional
	if err != nil {
		return nil, err
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// resolveFace selects the font face for rendering, degrading gracefully:
// the explicitly configured font file if loadable, else the first usable
// system sans-serif, else the embedded Go Regular face, and as a last
// resort the built-in fixed-size bitmap font. It never fails.
func resolveFace(fontPath string, size int, logger *slog.Logger) font.Face {
	if fontPath != "" {
		face, err := loadFace(fontPath, size)
		if err == nil {
			return face
		}
		logger.Warn("failed to load configured font, falling back",
			"font", fontPath,
			"error", err,
		)
	}

	for _, candidate := range systemFontCandidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		face, err := loadFace(candidate, size)
		if err == nil {
			return face
		}
		logger.Debug("failed to load system font", "font", candidate, "error", err)
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err == nil {
		face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}

	// Fixed 7x13 bitmap face; ignores the configured size but always works.
	logger.Warn("falling back to built-in bitmap font")
	return basicfont.Face7x13
}
