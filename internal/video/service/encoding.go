package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/domain"
	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

// MarkAsSentToEncode records that the media file was handed to the
// encoding pipeline.
func (s *Service) MarkAsSentToEncode(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.changeEncoding(ctx, id, func(v *models.Video) error {
		return v.MarkAsSentToEncode()
	}, "")
}

// MarkAsEncoded records the encoder output location and completes the
// media slot.
func (s *Service) MarkAsEncoded(ctx context.Context, id uuid.UUID, encodedPath string) (*models.Video, error) {
	if encodedPath == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.changeEncoding(ctx, id, func(v *models.Video) error {
		return v.MarkAsEncoded(encodedPath)
	}, encodedPath)
}

// MarkAsEncodeFailed records a terminal encoder failure.
func (s *Service) MarkAsEncodeFailed(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.changeEncoding(ctx, id, func(v *models.Video) error {
		return v.MarkAsEncodeFailed()
	}, "")
}

func (s *Service) changeEncoding(ctx context.Context, id uuid.UUID, transition func(*models.Video) error, encodedPath string) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var from domain.MediaStatus
	if video.Media != nil {
		from = video.Media.Status
	}

	if err := transition(video); err != nil {
		return nil, err
	}

	// Nothing changed, no write needed.
	if video.Media.Status == from && encodedPath == "" {
		return video, nil
	}

	event := models.NewVideoEncodingStatusChanged(
		s.idGen(), video.ID, from, video.Media.Status, encodedPath, s.clock(),
	)
	err = s.persist(ctx, func(tx repository.Tx) error {
		return s.videos.Update(ctx, tx, video)
	}, event)
	if err != nil {
		return nil, err
	}

	return video, nil
}
