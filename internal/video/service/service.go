package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

// Storage is the object store consumed by the orchestrators. Upload
// returns the stored path; that same path is what a compensating
// Delete must receive.
type Storage interface {
	Upload(ctx context.Context, key string, file io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// Service orchestrates the Video aggregate across the record store and
// the object store. No transaction spans both, so each write path owns
// its compensation logic explicitly.
type Service struct {
	videos      repository.VideoRepository
	categories  repository.RelationChecker
	genres      repository.RelationChecker
	castMembers repository.RelationChecker
	storage     Storage
	uow         repository.UnitOfWork
	outbox      repository.OutboxRepository
	logger      zerolog.Logger
	clock       func() time.Time
	idGen       func() uuid.UUID
}

type Config struct {
	Videos      repository.VideoRepository
	Categories  repository.RelationChecker
	Genres      repository.RelationChecker
	CastMembers repository.RelationChecker
	Storage     Storage
	UnitOfWork  repository.UnitOfWork
	Outbox      repository.OutboxRepository
	Logger      zerolog.Logger
}

func New(cfg Config) (*Service, error) {
	if cfg.Videos == nil {
		return nil, fmt.Errorf("video repository is required")
	}
	if cfg.Categories == nil || cfg.Genres == nil || cfg.CastMembers == nil {
		return nil, fmt.Errorf("relation checkers are required")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if cfg.UnitOfWork == nil {
		return nil, fmt.Errorf("unit of work is required")
	}
	if cfg.Outbox == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}

	return &Service{
		videos:      cfg.Videos,
		categories:  cfg.Categories,
		genres:      cfg.Genres,
		castMembers: cfg.CastMembers,
		storage:     cfg.Storage,
		uow:         cfg.UnitOfWork,
		outbox:      cfg.Outbox,
		logger:      cfg.Logger.With().Str("component", "video_service").Logger(),
		clock:       time.Now,
		idGen:       uuid.New,
	}, nil
}

// GetVideo returns the aggregate by id. It delegates to the repository
// and passes through domain errors (e.g. models.ErrNotFound) so the
// transport layer can map them to HTTP.
func (s *Service) GetVideo(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	return s.videos.GetByID(ctx, id)
}

// checkRelations resolves the candidate ids through the checker and
// fails with the missing subset, joined in input order.
func (s *Service) checkRelations(ctx context.Context, checker repository.RelationChecker, aggregate string, ids []uuid.UUID) error {
	existing, err := checker.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check %s ids: %w", aggregate, err)
	}

	found := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &models.RelatedAggregateError{Aggregate: aggregate, IDs: missing}
	}
	return nil
}

// persist runs one unit of work: write the aggregate mutation and its
// domain event, then commit.
func (s *Service) persist(ctx context.Context, write func(tx repository.Tx) error, event models.DomainEvent) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := write(tx); err != nil {
		return err
	}
	if err := s.outbox.Add(ctx, tx, event); err != nil {
		return fmt.Errorf("add outbox: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// deletePaths issues best-effort compensating deletes. Failures are
// logged and never replace the error that triggered compensation. The
// parent context may already be canceled, hence WithoutCancel.
func (s *Service) deletePaths(ctx context.Context, videoID uuid.UUID, paths []string) {
	ctx = context.WithoutCancel(ctx)
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			s.logger.Error().
				Err(err).
				Str("video_id", videoID.String()).
				Str("path", path).
				Msg("compensating delete failed")
		}
	}
}
