package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/romariotrain/video-catalog/internal/video/models"
)

func memVideo(id uuid.UUID) *models.Video {
	return models.NewVideo(id, time.Now(), models.VideoParams{
		Title:       "Sample",
		Description: "Desc",
		Rating:      models.RatingL,
	})
}

func TestMemoryVideoRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVideoRepository()

	id := uuid.New()
	v := memVideo(id)
	require.NoError(t, repo.Insert(ctx, nil, v))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, v.Title, got.Title)

	require.ErrorIs(t, repo.Insert(ctx, nil, memVideo(id)), models.ErrConflict)
	require.ErrorIs(t, repo.Insert(ctx, nil, nil), models.ErrInvalidArgument)
}

func TestMemoryVideoRepository_GetErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVideoRepository()

	_, err := repo.GetByID(ctx, uuid.Nil)
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryVideoRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVideoRepository()

	id := uuid.New()
	require.ErrorIs(t, repo.Update(ctx, nil, memVideo(id)), models.ErrNotFound)

	require.NoError(t, repo.Insert(ctx, nil, memVideo(id)))

	v := memVideo(id)
	v.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, nil, v))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
}

func TestMemoryVideoRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVideoRepository()

	id := uuid.New()
	require.ErrorIs(t, repo.Delete(ctx, nil, id), models.ErrNotFound)

	require.NoError(t, repo.Insert(ctx, nil, memVideo(id)))
	require.NoError(t, repo.Delete(ctx, nil, id))

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryVideoRepository_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVideoRepository()

	id := uuid.New()
	v := memVideo(id)
	v.UpdateMedia("media.mp4")
	v.AddCategory(uuid.New())
	require.NoError(t, repo.Insert(ctx, nil, v))

	// Mutating the inserted aggregate must not leak into the store.
	v.Title = "mutated"
	require.NoError(t, v.MarkAsSentToEncode())
	v.AddCategory(uuid.New())

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Sample", got.Title)
	require.Equal(t, "pending", string(got.Media.Status))
	require.Len(t, got.Categories, 1)

	// Mutating a fetched copy must not leak either.
	got.UpdateTrailer("trailer.mp4")
	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, again.Trailer)
}

func TestMemoryRelationChecker(t *testing.T) {
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	checker := NewMemoryRelationChecker(a, b)
	checker.Register(c)

	missing := uuid.New()
	existing, err := checker.ExistingIDs(ctx, []uuid.UUID{a, missing, c})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a, c}, existing)

	existing, err = checker.ExistingIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, existing)
}

func TestMemoryOutbox(t *testing.T) {
	ctx := context.Background()
	outbox := NewMemoryOutbox()

	id := uuid.New()
	event := models.NewVideoDeleted(uuid.New(), id, time.Now())
	require.NoError(t, outbox.Add(ctx, nil, event))

	events := outbox.Events()
	require.Len(t, events, 1)
	require.Equal(t, id, events[0].AggregateID())
}
