package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/models"
)

// MemoryVideoRepository keeps aggregates in a map. Used for local
// development and transport-level tests.
type MemoryVideoRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*models.Video
}

func NewMemoryVideoRepository() *MemoryVideoRepository {
	return &MemoryVideoRepository{data: make(map[uuid.UUID]*models.Video)}
}

func (r *MemoryVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneVideo(v), nil
}

func (r *MemoryVideoRepository) Insert(ctx context.Context, _ Tx, v *models.Video) error {
	if v == nil || v.ID == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[v.ID]; exists {
		return models.ErrConflict
	}
	r.data[v.ID] = cloneVideo(v)
	return nil
}

func (r *MemoryVideoRepository) Update(ctx context.Context, _ Tx, v *models.Video) error {
	if v == nil || v.ID == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[v.ID]; !exists {
		return models.ErrNotFound
	}
	r.data[v.ID] = cloneVideo(v)
	return nil
}

func (r *MemoryVideoRepository) Delete(ctx context.Context, _ Tx, id uuid.UUID) error {
	if id == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return models.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// cloneVideo makes a defensive copy so callers cannot mutate stored
// state. Media slots are copied too: MarkAsEncoded mutates them in
// place on the caller's side.
func cloneVideo(v *models.Video) *models.Video {
	cp := *v
	if v.Thumb != nil {
		img := *v.Thumb
		cp.Thumb = &img
	}
	if v.Banner != nil {
		img := *v.Banner
		cp.Banner = &img
	}
	if v.ThumbHalf != nil {
		img := *v.ThumbHalf
		cp.ThumbHalf = &img
	}
	if v.Media != nil {
		m := *v.Media
		cp.Media = &m
	}
	if v.Trailer != nil {
		m := *v.Trailer
		cp.Trailer = &m
	}
	cp.Categories = append([]uuid.UUID(nil), v.Categories...)
	cp.Genres = append([]uuid.UUID(nil), v.Genres...)
	cp.CastMembers = append([]uuid.UUID(nil), v.CastMembers...)
	return &cp
}

// MemoryUnitOfWork hands out no-op transactions for the in-memory
// stack, where every repository write is already final.
type MemoryUnitOfWork struct{}

func NewMemoryUnitOfWork() *MemoryUnitOfWork { return &MemoryUnitOfWork{} }

func (u *MemoryUnitOfWork) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return memoryTx{}, nil
}

type memoryTx struct{}

func (memoryTx) Commit() error   { return nil }
func (memoryTx) Rollback() error { return nil }

// MemoryRelationChecker answers existence checks from a fixed id set.
type MemoryRelationChecker struct {
	mu  sync.RWMutex
	ids map[uuid.UUID]struct{}
}

func NewMemoryRelationChecker(ids ...uuid.UUID) *MemoryRelationChecker {
	c := &MemoryRelationChecker{ids: make(map[uuid.UUID]struct{})}
	for _, id := range ids {
		c.ids[id] = struct{}{}
	}
	return c
}

func (c *MemoryRelationChecker) Register(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[id] = struct{}{}
}

func (c *MemoryRelationChecker) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var existing []uuid.UUID
	for _, id := range ids {
		if _, ok := c.ids[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

// MemoryOutbox records events instead of persisting them.
type MemoryOutbox struct {
	mu     sync.Mutex
	events []models.DomainEvent
}

func NewMemoryOutbox() *MemoryOutbox { return &MemoryOutbox{} }

func (o *MemoryOutbox) Add(ctx context.Context, _ Tx, event models.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

func (o *MemoryOutbox) Events() []models.DomainEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.DomainEvent(nil), o.events...)
}
