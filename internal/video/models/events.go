package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/domain"
)

type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// event carries the envelope fields shared by every domain event.
// Timestamps and ids come from the caller, never from the global clock.
type event struct {
	eventID    uuid.UUID
	videoID    uuid.UUID
	occurredAt time.Time
}

func (e event) EventID() uuid.UUID     { return e.eventID }
func (e event) AggregateID() uuid.UUID { return e.videoID }
func (e event) OccurredAt() time.Time  { return e.occurredAt }

type VideoCreated struct {
	event
	title string
}

func NewVideoCreated(eventID uuid.UUID, video *Video, occurredAt time.Time) *VideoCreated {
	return &VideoCreated{
		event: event{eventID: eventID, videoID: video.ID, occurredAt: occurredAt},
		title: video.Title,
	}
}

func (e *VideoCreated) EventType() string { return "VideoCreated" }
func (e *VideoCreated) Title() string     { return e.title }

func (e *VideoCreated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID    uuid.UUID `json:"event_id"`
		VideoID    uuid.UUID `json:"video_id"`
		Title      string    `json:"title"`
		OccurredAt time.Time `json:"occurred_at"`
	}{e.eventID, e.videoID, e.title, e.occurredAt})
}

type VideoUpdated struct {
	event
	title string
}

func NewVideoUpdated(eventID uuid.UUID, video *Video, occurredAt time.Time) *VideoUpdated {
	return &VideoUpdated{
		event: event{eventID: eventID, videoID: video.ID, occurredAt: occurredAt},
		title: video.Title,
	}
}

func (e *VideoUpdated) EventType() string { return "VideoUpdated" }
func (e *VideoUpdated) Title() string     { return e.title }

func (e *VideoUpdated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID    uuid.UUID `json:"event_id"`
		VideoID    uuid.UUID `json:"video_id"`
		Title      string    `json:"title"`
		OccurredAt time.Time `json:"occurred_at"`
	}{e.eventID, e.videoID, e.title, e.occurredAt})
}

type VideoDeleted struct {
	event
}

func NewVideoDeleted(eventID, videoID uuid.UUID, occurredAt time.Time) *VideoDeleted {
	return &VideoDeleted{event: event{eventID: eventID, videoID: videoID, occurredAt: occurredAt}}
}

func (e *VideoDeleted) EventType() string { return "VideoDeleted" }

func (e *VideoDeleted) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID    uuid.UUID `json:"event_id"`
		VideoID    uuid.UUID `json:"video_id"`
		OccurredAt time.Time `json:"occurred_at"`
	}{e.eventID, e.videoID, e.occurredAt})
}

// VideoEncodingStatusChanged is emitted when the media slot moves
// through the encode state machine.
type VideoEncodingStatusChanged struct {
	event
	from        domain.MediaStatus
	to          domain.MediaStatus
	encodedPath string
}

func NewVideoEncodingStatusChanged(
	eventID, videoID uuid.UUID,
	from, to domain.MediaStatus,
	encodedPath string,
	occurredAt time.Time,
) *VideoEncodingStatusChanged {
	return &VideoEncodingStatusChanged{
		event:       event{eventID: eventID, videoID: videoID, occurredAt: occurredAt},
		from:        from,
		to:          to,
		encodedPath: encodedPath,
	}
}

func (e *VideoEncodingStatusChanged) EventType() string        { return "VideoEncodingStatusChanged" }
func (e *VideoEncodingStatusChanged) From() domain.MediaStatus { return e.from }
func (e *VideoEncodingStatusChanged) To() domain.MediaStatus   { return e.to }
func (e *VideoEncodingStatusChanged) EncodedPath() string      { return e.encodedPath }

func (e *VideoEncodingStatusChanged) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID     uuid.UUID          `json:"event_id"`
		VideoID     uuid.UUID          `json:"video_id"`
		From        domain.MediaStatus `json:"from"`
		To          domain.MediaStatus `json:"to"`
		EncodedPath string             `json:"encoded_path,omitempty"`
		OccurredAt  time.Time          `json:"occurred_at"`
	}{e.eventID, e.videoID, e.from, e.to, e.encodedPath, e.occurredAt})
}
