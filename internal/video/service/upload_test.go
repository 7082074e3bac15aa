package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/romariotrain/video-catalog/internal/video/domain"
	"github.com/romariotrain/video-catalog/internal/video/models"
)

func TestUploadMedias_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	id := uuid.New()
	m.videos.On("GetByID", mock.Anything, id).Return(nil, models.ErrNotFound).Once()

	got, err := svc.UploadMedias(ctx, UploadMediasInput{VideoID: id, VideoFile: file("mp4")})
	require.ErrorIs(t, err, models.ErrNotFound)
	require.Nil(t, got)
	m.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadMedias_AttachesPendingMedia(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	id := uuid.New()
	mediaKey := StorageKey(id, SlotMedia, "mp4")

	m.videos.On("GetByID", mock.Anything, id).Return(storedVideo(id), nil).Once()
	m.storage.On("Upload", mock.Anything, mediaKey, mock.Anything).Return(mediaKey, nil).Once()
	m.videos.On("Update", mock.Anything, m.tx, mock.Anything).Return(nil).Once()
	m.expectCommit()

	got, err := svc.UploadMedias(ctx, UploadMediasInput{VideoID: id, VideoFile: file("mp4")})
	require.NoError(t, err)
	require.NotNil(t, got.Media)
	require.Equal(t, mediaKey, got.Media.FilePath)
	require.Equal(t, domain.MediaPending, got.Media.Status)
	require.Nil(t, got.Trailer)

	m.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUploadMedias_CommitFailureDeletesOnlyNewUploads(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	id := uuid.New()
	video := storedVideo(id)
	// Pre-existing media blob from a prior successful call. It must
	// survive this invocation's compensation.
	video.UpdateMedia("pre-existing-media.mp4")

	trailerKey := StorageKey(id, SlotTrailer, "mp4")
	m.videos.On("GetByID", mock.Anything, id).Return(video, nil).Once()
	m.storage.On("Upload", mock.Anything, trailerKey, mock.Anything).Return(trailerKey, nil).Once()

	commitErr := errors.New("commit failed")
	m.uow.On("Begin", mock.Anything).Return(m.tx, nil).Once()
	m.videos.On("Update", mock.Anything, m.tx, mock.Anything).Return(nil).Once()
	m.outbox.On("Add", mock.Anything, m.tx, mock.Anything).Return(nil).Once()
	m.tx.On("Commit").Return(commitErr).Once()
	m.tx.On("Rollback").Return(nil).Once()

	m.storage.On("Delete", mock.Anything, trailerKey).Return(nil).Once()

	got, err := svc.UploadMedias(ctx, UploadMediasInput{VideoID: id, TrailerFile: file("mp4")})
	require.Nil(t, got)
	require.ErrorIs(t, err, commitErr)

	m.storage.AssertNumberOfCalls(t, "Delete", 1)
	m.storage.AssertNotCalled(t, "Delete", mock.Anything, "pre-existing-media.mp4")
	m.storage.AssertExpectations(t)
}

func TestUploadMedias_TrailerUploadFailureDeletesNewMediaOnly(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	id := uuid.New()
	mediaKey := StorageKey(id, SlotMedia, "mp4")
	trailerKey := StorageKey(id, SlotTrailer, "mov")

	storageErr := errors.New("trailer upload failed")
	m.videos.On("GetByID", mock.Anything, id).Return(storedVideo(id), nil).Once()
	m.storage.On("Upload", mock.Anything, mediaKey, mock.Anything).Return(mediaKey, nil).Once()
	m.storage.On("Upload", mock.Anything, trailerKey, mock.Anything).Return("", storageErr).Once()
	m.storage.On("Delete", mock.Anything, mediaKey).Return(nil).Once()

	got, err := svc.UploadMedias(ctx, UploadMediasInput{
		VideoID:     id,
		VideoFile:   file("mp4"),
		TrailerFile: file("mov"),
	})
	require.Nil(t, got)
	require.ErrorIs(t, err, storageErr)

	m.storage.AssertNumberOfCalls(t, "Delete", 1)
	m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	m.storage.AssertExpectations(t)
}

func TestUploadMedias_ReplacesMediaDiscardingEncodeProgress(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	id := uuid.New()
	video := storedVideo(id)
	video.UpdateMedia("old.mp4")
	require.NoError(t, video.MarkAsSentToEncode())

	mediaKey := StorageKey(id, SlotMedia, "mp4")
	m.videos.On("GetByID", mock.Anything, id).Return(video, nil).Once()
	m.storage.On("Upload", mock.Anything, mediaKey, mock.Anything).Return(mediaKey, nil).Once()
	m.videos.On("Update", mock.Anything, m.tx, mock.Anything).Return(nil).Once()
	m.expectCommit()

	got, err := svc.UploadMedias(ctx, UploadMediasInput{VideoID: id, VideoFile: file("mp4")})
	require.NoError(t, err)
	require.Equal(t, domain.MediaPending, got.Media.Status)
	require.Equal(t, mediaKey, got.Media.FilePath)
}
