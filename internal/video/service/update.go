package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/domain"
	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

type UpdateVideoInput struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	// Rating keeps the current classification when nil.
	Rating *models.Rating
	// Genres is the only relation list mutable after creation.
	Genres []uuid.UUID
}

// UpdateVideo replaces the scalar fields and appends the supplied
// genre ids after an existence check. It performs no uploads, so there
// is no compensation step: nothing is persisted unless the commit
// succeeds.
func (s *Service) UpdateVideo(ctx context.Context, input UpdateVideoInput) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	video.Update(models.UpdateVideoParams{
		Title:        input.Title,
		Description:  input.Description,
		YearLaunched: input.YearLaunched,
		Opened:       input.Opened,
		Published:    input.Published,
		Duration:     input.Duration,
		Rating:       input.Rating,
	})

	if len(input.Genres) > 0 {
		if err := s.checkRelations(ctx, s.genres, "genre", input.Genres); err != nil {
			return nil, err
		}
		for _, id := range input.Genres {
			video.AddGenre(id)
		}
	}

	n := domain.NewNotification()
	video.Validate(n)
	if err := n.Err(); err != nil {
		return nil, err
	}

	event := models.NewVideoUpdated(s.idGen(), video, s.clock())
	err = s.persist(ctx, func(tx repository.Tx) error {
		return s.videos.Update(ctx, tx, video)
	}, event)
	if err != nil {
		return nil, err
	}

	return video, nil
}
