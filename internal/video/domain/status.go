package domain

import "fmt"

// MediaStatus tracks the encoding pipeline state of a media slot.
type MediaStatus string

const (
	MediaPending    MediaStatus = "pending"
	MediaProcessing MediaStatus = "processing"
	MediaCompleted  MediaStatus = "completed"
	MediaError      MediaStatus = "error"
)

// CanTransition reports whether the encode state machine allows moving
// from one status to another. Completed and Error are terminal. The
// encoder is allowed to report completion without a prior processing
// notification, so pending -> completed is legal.
func CanTransition(from, to MediaStatus) bool {
	switch from {
	case MediaPending:
		return to == MediaProcessing || to == MediaCompleted
	case MediaProcessing:
		return to == MediaCompleted || to == MediaError
	case MediaCompleted:
		return false
	case MediaError:
		return false
	default:
		return false
	}
}

func ValidateTransition(from, to MediaStatus) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
