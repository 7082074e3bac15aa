package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

type VideoRepoMock struct {
	mock.Mock
}

func (m *VideoRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoRepoMock) Insert(ctx context.Context, tx repository.Tx, v *models.Video) error {
	args := m.Called(ctx, tx, v)
	return args.Error(0)
}

func (m *VideoRepoMock) Update(ctx context.Context, tx repository.Tx, v *models.Video) error {
	args := m.Called(ctx, tx, v)
	return args.Error(0)
}

func (m *VideoRepoMock) Delete(ctx context.Context, tx repository.Tx, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type RelationCheckerMock struct {
	mock.Mock
}

func (m *RelationCheckerMock) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if v := args.Get(0); v != nil {
		return v.([]uuid.UUID), args.Error(1)
	}
	return nil, args.Error(1)
}

type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) Upload(ctx context.Context, key string, file io.Reader) (string, error) {
	args := m.Called(ctx, key, file)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type UowMock struct {
	mock.Mock
}

func (m *UowMock) Begin(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(repository.Tx), args.Error(1)
	}
	return nil, args.Error(1)
}

type TxMock struct {
	mock.Mock
}

func (m *TxMock) Commit() error {
	return m.Called().Error(0)
}

func (m *TxMock) Rollback() error {
	return m.Called().Error(0)
}

type OutboxMock struct {
	mock.Mock
}

func (m *OutboxMock) Add(ctx context.Context, tx repository.Tx, event models.DomainEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}
