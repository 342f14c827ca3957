// Package config provides configuration structures and utilities for
// photostamp. It defines the watermark appearance options, batch output
// settings, and YAML configuration file load/save helpers.
package config
