package storagemodels

import (
	"time"
)

// StreamResult represents a single row in a stream with metadata.
// A result with Error set is always the last one sent.
type StreamResult struct {
	Row   Row        // The row, unset when Error is set
	Error error      // Terminal failure, if any
	Meta  StreamMeta // Metadata about this row
}

// StreamMeta contains metadata about a streamed row
type StreamMeta struct {
	RunID      string    // Identifies the paging run
	Index      int64     // Row index in stream (0-based)
	PageNumber int       // Page number (1-based)
	Timestamp  time.Time // When the row was received
}

// StreamOptions configures streaming behavior
type StreamOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	ProgressHandler func(StreamProgress) // Optional progress callback, called after each page
}

// StreamProgress tracks paging progress
type StreamProgress struct {
	RunID          string      // Identifies the paging run
	ItemsProcessed int64       // Total rows received
	PagesProcessed int         // Total pages received
	LastToken      ResumeToken // Token returned by the last page
	StartTime      time.Time   // When paging started
	CurrentRate    float64     // Rows per second
}

// StreamOption is a functional option for configuring streaming
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize: 100,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}
