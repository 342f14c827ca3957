// Package batch drives watermark processing over one file or a directory
// of files.
//
// The Runner resolves the input root into independent units of work, runs
// the per-image pipeline on each in deterministic order, and aggregates
// per-unit outcomes into a Summary. Individual failures are recorded as
// Result values and never short-circuit the batch.
//
// Design decision: Processing is strictly sequential. Units are fully
// independent, but the workload is dominated by image decode/encode on a
// single local disk, and a deterministic order keeps output and logs
// reproducible.
package batch
