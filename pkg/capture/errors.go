package capture

import "errors"

// Capacity bounds the number of screenshots one batch accepts.
const Capacity = 10

var (
	// ErrNoBatch is returned when a session has no open batch to act on.
	ErrNoBatch = errors.New("no open batch for this session")
	// ErrNoImages is returned by Process on a batch with no captures.
	ErrNoImages = errors.New("batch has no images")
	// ErrCapacityExceeded is returned once a batch holds Capacity images.
	ErrCapacityExceeded = errors.New("batch capture capacity exceeded")
	// ErrNotProcessed is returned by MarkSent before a successful Process.
	ErrNotProcessed = errors.New("batch has not been processed")
	// ErrBatchSent rejects mutation of a sent, immutable batch.
	ErrBatchSent = errors.New("batch already sent")
)
