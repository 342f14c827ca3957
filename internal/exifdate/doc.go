// Package exifdate extracts capture timestamps from image files.
//
// It reads EXIF date tags in priority order (DateTimeOriginal,
// DateTimeDigitized, DateTime) and falls back to the file's modification
// time, then to the current wall clock, when no tag is present. Extraction
// never fails a file: every error is absorbed locally and reported through
// the fallback path.
package exifdate
