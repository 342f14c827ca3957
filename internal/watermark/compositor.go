package watermark

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// jpegQuality is the encoding quality for JPEG-family outputs.
// 95 keeps compression artifacts below what the watermark itself adds.
const jpegQuality = 95

// jpegBackground is the color alpha-less formats are flattened onto.
var jpegBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Processor renders timestamp watermarks onto images.
//
// A Processor is built once from an immutable Options value and safely
// reused for every image in a batch: the color is resolved and the font
// face loaded at construction time, never per file.
type Processor struct {
	// opts is the appearance configuration, captured at construction.
	opts Options

	// fill is the resolved text color with the opacity-derived alpha.
	fill color.NRGBA

	// face is the selected font face.
	face font.Face

	// logger receives per-file render warnings.
	logger *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorLogger sets a custom logger for the processor.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a Processor for the given options.
// Color resolution and font selection happen here and never fail: invalid
// colors resolve to white and the font chain degrades to a built-in face.
func NewProcessor(opts Options, popts ...ProcessorOption) *Processor {
	p := &Processor{opts: opts}

	for _, opt := range popts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	opacity := opts.Opacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	fill := ResolveColor(opts.Color)
	fill.A = uint8(math.Round(opacity * 255))
	p.fill = fill

	p.face = resolveFace(opts.FontPath, opts.FontSize, p.logger)

	return p
}

// Stamp opens the image at inputPath, renders text at the configured
// anchor, and writes the composited result to outputPath. The input file
// is never modified; the output file is written only after the composite
// fully succeeds in memory.
func (p *Processor) Stamp(inputPath, outputPath, text string) error {
	src, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}

	// Clone normalizes the source to an NRGBA raster at the zero origin,
	// giving every format an alpha channel to composite against.
	base := imaging.Clone(src)
	bounds := base.Bounds()

	textW, textH := textExtent(p.face, text)
	at := p.opts.Anchor.Place(bounds.Dx(), bounds.Dy(), textW, textH)

	// The overlay holds only the rendered glyphs on full transparency.
	overlay := image.NewNRGBA(bounds)
	drawText(overlay, p.face, at.X, at.Y, text, p.fill)

	result := image.NewNRGBA(bounds)
	draw.Draw(result, bounds, base, bounds.Min, draw.Src)
	draw.Draw(result, bounds, overlay, bounds.Min, draw.Over)

	if err := encode(result, outputPath); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}

	return nil
}

// encode writes the image according to the output extension.
// JPEG-family extensions are flattened to opaque RGB and encoded at the
// fixed high-quality preset; PNG keeps its alpha channel; anything else
// falls through to the default encoder for that extension.
func encode(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		out, err := os.Create(path) //nolint:gosec // Derived output path is intentional
		if err != nil {
			return err
		}
		defer out.Close()
		return jpeg.Encode(out, flattenToRGB(img), &jpeg.Options{Quality: jpegQuality})
	case ".png":
		out, err := os.Create(path) //nolint:gosec // Derived output path is intentional
		if err != nil {
			return err
		}
		defer out.Close()
		return png.Encode(out, img)
	default:
		return imaging.Save(img, path)
	}
}

// flattenToRGB composites the image over an opaque background, removing
// the alpha channel for formats that cannot carry one.
func flattenToRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, &image.Uniform{C: jpegBackground}, image.Point{}, draw.Src)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Over)
	return rgba
}

// textExtent measures the rendered size of text in whole pixels.
func textExtent(face font.Face, text string) (int, int) {
	bounds, _ := font.BoundString(face, text)
	return fixedCeil(bounds.Max.X - bounds.Min.X), fixedCeil(bounds.Max.Y - bounds.Min.Y)
}

// drawText draws text with its top-left corner at (x, y).
func drawText(dst *image.NRGBA, face font.Face, x, y int, text string, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}

// fixedCeil converts a 26.6 fixed-point value to pixels, rounding up.
func fixedCeil(v fixed.Int26_6) int {
	return int(math.Ceil(float64(v) / 64.0))
}
