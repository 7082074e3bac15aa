package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

type UploadMediasInput struct {
	VideoID     uuid.UUID
	VideoFile   *FileInput
	TrailerFile *FileInput
}

// UploadMedias attaches a new media and/or trailer file to an existing
// aggregate. Compensation here deletes only the paths uploaded during
// this invocation, tracked locally: the aggregate may already own
// blobs from a prior call and those must survive a failure.
func (s *Service) UploadMedias(ctx context.Context, input UploadMediasInput) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, input.VideoID)
	if err != nil {
		return nil, err
	}

	var uploaded []string

	if input.VideoFile != nil {
		path, err := s.upload(ctx, video.ID, SlotMedia, input.VideoFile)
		if err != nil {
			s.deletePaths(ctx, video.ID, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, path)
		video.UpdateMedia(path)
	}

	if input.TrailerFile != nil {
		path, err := s.upload(ctx, video.ID, SlotTrailer, input.TrailerFile)
		if err != nil {
			s.deletePaths(ctx, video.ID, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, path)
		video.UpdateTrailer(path)
	}

	event := models.NewVideoUpdated(s.idGen(), video, s.clock())
	err = s.persist(ctx, func(tx repository.Tx) error {
		return s.videos.Update(ctx, tx, video)
	}, event)
	if err != nil {
		s.deletePaths(ctx, video.ID, uploaded)
		return nil, err
	}

	return video, nil
}
