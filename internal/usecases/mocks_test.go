package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"creatorverse.backend/internal/domain/entities"
)

// Mock CreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) List(ctx context.Context) ([]*entities.Creator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Creator), args.Error(1)
}

func (m *MockCreatorRepository) Create(ctx context.Context, creator *entities.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *MockCreatorRepository) Update(ctx context.Context, creator *entities.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *MockCreatorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCreatorRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
