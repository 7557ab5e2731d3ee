package colfile

import "errors"

// Error kinds surfaced by the page iterator and page-index pruner,
// following the taxonomy of the format this package reads: Io, Corrupt,
// Unsupported, and InvariantViolation. Callers distinguish them with
// errors.Is; the concrete error returned always wraps additional context
// with fmt.Errorf("...: %w", ...).
var (
	// ErrIo is returned when the underlying byte-range reader fails, or
	// when a page body is shorter than its header declares.
	ErrIo = errors.New("i/o error reading page stream")

	// ErrCorrupt is returned when a page header fails to parse, a
	// decompressed page body's length does not match the header's
	// declared uncompressed size, or a page type appears where the
	// surrounding context forbids it.
	ErrCorrupt = errors.New("corrupt page stream")

	// ErrUnsupported is returned when a page requires a compression
	// codec this package does not implement.
	ErrUnsupported = errors.New("unsupported codec")

	// ErrInvariantViolation is returned when a caller invokes an
	// operation that requires state the iterator does not have, such as
	// peeking or skipping without a configured page index, or skipping
	// past the last page of a column chunk.
	ErrInvariantViolation = errors.New("invariant violation")
)
