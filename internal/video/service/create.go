package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/domain"
	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

// FileInput is an incoming byte stream for one media slot.
type FileInput struct {
	Reader    io.Reader
	Extension string
}

type CreateVideoInput struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       models.Rating

	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID

	Thumb     *FileInput
	Banner    *FileInput
	ThumbHalf *FileInput
	Media     *FileInput
	Trailer   *FileInput
}

// CreateVideo validates the aggregate, checks every supplied relation
// id, uploads the supplied files and persists the aggregate in one
// unit of work. Uploads happen before the record-store write so the
// persisted aggregate never references a blob that does not exist yet.
// Any failure after the first upload triggers compensating deletes for
// every slot populated so far, then the original error is returned.
func (s *Service) CreateVideo(ctx context.Context, input CreateVideoInput) (*models.Video, error) {
	video := models.NewVideo(s.idGen(), s.clock(), models.VideoParams{
		Title:        input.Title,
		Description:  input.Description,
		YearLaunched: input.YearLaunched,
		Opened:       input.Opened,
		Published:    input.Published,
		Duration:     input.Duration,
		Rating:       input.Rating,
	})

	n := domain.NewNotification()
	video.Validate(n)
	if err := n.Err(); err != nil {
		return nil, err
	}

	if err := s.validateAndAddRelations(ctx, input, video); err != nil {
		return nil, err
	}

	if err := s.uploadAll(ctx, input, video); err != nil {
		s.clearStorage(ctx, video)
		return nil, err
	}

	event := models.NewVideoCreated(s.idGen(), video, s.clock())
	err := s.persist(ctx, func(tx repository.Tx) error {
		return s.videos.Insert(ctx, tx, video)
	}, event)
	if err != nil {
		s.clearStorage(ctx, video)
		return nil, err
	}

	return video, nil
}

func (s *Service) validateAndAddRelations(ctx context.Context, input CreateVideoInput, video *models.Video) error {
	if len(input.Categories) > 0 {
		if err := s.checkRelations(ctx, s.categories, "category", input.Categories); err != nil {
			return err
		}
		for _, id := range input.Categories {
			video.AddCategory(id)
		}
	}

	if len(input.Genres) > 0 {
		if err := s.checkRelations(ctx, s.genres, "genre", input.Genres); err != nil {
			return err
		}
		for _, id := range input.Genres {
			video.AddGenre(id)
		}
	}

	if len(input.CastMembers) > 0 {
		if err := s.checkRelations(ctx, s.castMembers, "cast member", input.CastMembers); err != nil {
			return err
		}
		for _, id := range input.CastMembers {
			video.AddCastMember(id)
		}
	}

	return nil
}

// uploadAll uploads images first, then the video medias. A slot is
// mutated only after its upload returned successfully, so clearStorage
// sees exactly the uploads that happened.
func (s *Service) uploadAll(ctx context.Context, input CreateVideoInput, video *models.Video) error {
	if input.Thumb != nil {
		path, err := s.upload(ctx, video.ID, SlotThumb, input.Thumb)
		if err != nil {
			return err
		}
		video.UpdateThumb(path)
	}
	if input.Banner != nil {
		path, err := s.upload(ctx, video.ID, SlotBanner, input.Banner)
		if err != nil {
			return err
		}
		video.UpdateBanner(path)
	}
	if input.ThumbHalf != nil {
		path, err := s.upload(ctx, video.ID, SlotThumbHalf, input.ThumbHalf)
		if err != nil {
			return err
		}
		video.UpdateThumbHalf(path)
	}
	if input.Media != nil {
		path, err := s.upload(ctx, video.ID, SlotMedia, input.Media)
		if err != nil {
			return err
		}
		video.UpdateMedia(path)
	}
	if input.Trailer != nil {
		path, err := s.upload(ctx, video.ID, SlotTrailer, input.Trailer)
		if err != nil {
			return err
		}
		video.UpdateTrailer(path)
	}
	return nil
}

func (s *Service) upload(ctx context.Context, videoID uuid.UUID, slot string, file *FileInput) (string, error) {
	return s.storage.Upload(ctx, StorageKey(videoID, slot, file.Extension), file.Reader)
}

// clearStorage deletes every blob the in-memory aggregate currently
// references, in slot order.
func (s *Service) clearStorage(ctx context.Context, video *models.Video) {
	var paths []string
	if video.Thumb != nil {
		paths = append(paths, video.Thumb.Path)
	}
	if video.Banner != nil {
		paths = append(paths, video.Banner.Path)
	}
	if video.ThumbHalf != nil {
		paths = append(paths, video.ThumbHalf.Path)
	}
	if video.Media != nil {
		paths = append(paths, video.Media.FilePath)
	}
	if video.Trailer != nil {
		paths = append(paths, video.Trailer.FilePath)
	}
	s.deletePaths(ctx, video.ID, paths)
}
