// Package diag defines the diagnostic model shared by the generation
// pipeline.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     scaffolding, rendering, and stripping files.
//   - Offer light-weight aggregation (Bag) so producers can emit diagnostics
//     without coupling to storage or formatting layers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Path – the file the finding concerns, as given by the producer.
//   - Line – 1-based line number, zero when the finding is file-scoped.
//   - Message – human oriented text; keep it short and actionable.
//
// Rendering lives in internal/diagfmt; package diag performs no formatting,
// IO, or CLI integration. Keep the model deterministic so runs can be
// compared and diagnostics can be cached or golden-tested.
package diag
