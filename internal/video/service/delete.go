package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/models"
)

// DeleteVideo removes the record and the media/trailer blobs. Image
// blobs (thumb, banner, thumb half) are left in place. There is no
// compensation: deletion is not reversible, and a failure after the
// record delete leaves a partially cleaned state that surfaces as a
// fatal error to the caller.
func (s *Service) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.videos.Delete(ctx, tx, video.ID); err != nil {
		return err
	}

	if video.Trailer != nil {
		if err := s.storage.Delete(ctx, video.Trailer.FilePath); err != nil {
			return fmt.Errorf("delete trailer blob: %w", err)
		}
	}
	if video.Media != nil {
		if err := s.storage.Delete(ctx, video.Media.FilePath); err != nil {
			return fmt.Errorf("delete media blob: %w", err)
		}
	}

	event := models.NewVideoDeleted(s.idGen(), video.ID, s.clock())
	if err := s.outbox.Add(ctx, tx, event); err != nil {
		return fmt.Errorf("add outbox: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
