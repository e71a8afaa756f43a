package domain

import "errors"

// Indexing-path errors. Each aborts the indexing action; nothing
// partial is committed to the store.
var (
	// ErrInvalidURL means the input URL is missing a scheme or host.
	// Rejected before any I/O.
	ErrInvalidURL = errors.New("invalid URL: scheme and host are required")

	// ErrFetchFailed wraps network and HTTP-level failures while
	// fetching the page.
	ErrFetchFailed = errors.New("failed to fetch URL")

	// ErrEmptyContent means extraction produced no usable text.
	ErrEmptyContent = errors.New("no content could be extracted from the website")

	// ErrEmptyChunks means chunking produced no usable chunks.
	ErrEmptyChunks = errors.New("no meaningful content chunks could be created")

	// ErrNoChunks means an index build was attempted with zero chunks.
	ErrNoChunks = errors.New("no chunks provided for index build")
)

// Refusal is the fixed answer returned whenever no grounded answer
// exists. Question-answering never surfaces hard errors; every Q&A
// failure collapses to this exact string.
const Refusal = "The answer is not available on the provided website."
