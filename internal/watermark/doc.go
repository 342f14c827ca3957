// Package watermark implements the per-image timestamp watermark pipeline:
// anchor layout, color resolution, font selection, overlay rendering, and
// format-aware encoding.
//
// The entry point is Processor, built once from an immutable Options value
// and reused for every image in a batch. Rendering draws the date text onto
// a transparent overlay sized to the source image and alpha-composites it
// with the over operator; JPEG-family outputs are flattened to opaque RGB
// before encoding while PNG keeps its alpha channel.
package watermark
