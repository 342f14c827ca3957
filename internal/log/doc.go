// Package log provides structured logging helpers for photostamp.
//
// It builds on the standard log/slog package and adds a handler wrapper
// that tags every record with the emitting component. The core pipeline
// emits log events through loggers created here but does not own log
// routing or formatting.
package log
