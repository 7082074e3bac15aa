package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/models"
)

// Tx is one unit of work. Nothing written through it is durable until
// Commit returns successfully.
type Tx interface {
	Commit() error
	Rollback() error
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

type VideoRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Insert(ctx context.Context, tx Tx, v *models.Video) error
	Update(ctx context.Context, tx Tx, v *models.Video) error
	Delete(ctx context.Context, tx Tx, id uuid.UUID) error
}

// RelationChecker resolves which of the candidate ids exist. Missing
// ids are signalled by the returned subset being smaller, never by an
// error.
type RelationChecker interface {
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type OutboxRepository interface {
	Add(ctx context.Context, tx Tx, event models.DomainEvent) error
}
