// Package main provides the entry point for the photostamp CLI.
//
// Photostamp adds a visible capture-date watermark to photographs. The
// date comes from EXIF metadata when present, falling back to the file's
// modification time.
//
// Usage:
//
//	photostamp stamp photo.jpg
//	photostamp stamp --position top-left --color red /path/to/photos
//
// See --help for all available options.
package main

// main is the entry point for photostamp.
func main() {
	Execute()
}
