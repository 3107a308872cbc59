// Package transcript streams exported chat transcripts into enriched record tables
//
// Design choices:
// - Stream with bufio.Scanner (1MB initial buffer, 32MB cap) so a file is never held whole
// - Gzip input is detected from its magic bytes; plain text passes through untouched
// - Messages are grouped into fixed-size chunks enriched on a bounded errgroup pool
// - A single reconciliation pass re-sorts the concatenated chunks and recomputes
//   response times and conversation ids, so output never depends on chunk size
// - Only I/O failures are errors; malformed lines degrade into continuations and diagnostics
package transcript
