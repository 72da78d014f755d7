package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"creatorverse.backend/internal/domain/entities"
	domainerrors "creatorverse.backend/internal/domain/errors"
	"creatorverse.backend/internal/domain/repositories"
	"creatorverse.backend/pkg/logger"
	"creatorverse.backend/pkg/utils"
)

// CreatorUsecase is the data access layer between pages and the creators store
type CreatorUsecase struct {
	creatorRepo repositories.CreatorRepository
	callTimeout time.Duration
}

// NewCreatorUsecase creates a new creator usecase. A zero callTimeout leaves
// store calls bounded only by the caller's context.
func NewCreatorUsecase(creatorRepo repositories.CreatorRepository, callTimeout time.Duration) *CreatorUsecase {
	return &CreatorUsecase{
		creatorRepo: creatorRepo,
		callTimeout: callTimeout,
	}
}

// ListCreators returns every creator, newest first
func (u *CreatorUsecase) ListCreators(ctx context.Context) ([]*entities.Creator, error) {
	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	items, err := u.creatorRepo.List(ctx)
	if err != nil {
		logger.Debug(ctx, "list creators failed", zap.Error(err))
		return nil, asStoreError(err)
	}
	if items == nil {
		items = []*entities.Creator{}
	}
	logger.Debug(ctx, "listed creators", zap.Int("count", len(items)))
	return items, nil
}

// GetCreator returns the creator with the given id
func (u *CreatorUsecase) GetCreator(ctx context.Context, rawID string) (*entities.Creator, error) {
	id, ok := utils.ParseID(rawID)
	if !ok {
		return nil, domainerrors.NotFound("Creator not found")
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	creator, err := u.creatorRepo.GetByID(ctx, id)
	if err != nil {
		logger.Debug(ctx, "get creator failed", zap.String("id", id.String()), zap.Error(err))
		if domainerrors.IsNotFound(err) {
			return nil, domainerrors.NotFound("Creator not found")
		}
		return nil, asStoreError(err)
	}
	return creator, nil
}

// AddCreator inserts a new creator; the store assigns id and created_at
func (u *CreatorUsecase) AddCreator(ctx context.Context, fields entities.CreatorFields) (*entities.Creator, error) {
	fields = fields.Trimmed()
	creator := &entities.Creator{
		Name:        fields.Name,
		URL:         fields.URL,
		Description: fields.Description,
		ImageURL:    fields.NullableImageURL(),
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	if err := u.creatorRepo.Create(ctx, creator); err != nil {
		logger.Debug(ctx, "add creator failed", zap.Error(err))
		return nil, asStoreError(err)
	}
	logger.Debug(ctx, "added creator", zap.String("id", creator.ID.String()))
	return creator, nil
}

// UpdateCreator replaces the editable fields of a creator. Updating a missing
// creator is not an error.
func (u *CreatorUsecase) UpdateCreator(ctx context.Context, rawID string, fields entities.CreatorFields) error {
	id, ok := utils.ParseID(rawID)
	if !ok {
		return nil
	}

	fields = fields.Trimmed()
	creator := &entities.Creator{
		ID:          id,
		Name:        fields.Name,
		URL:         fields.URL,
		Description: fields.Description,
		ImageURL:    fields.NullableImageURL(),
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	if err := u.creatorRepo.Update(ctx, creator); err != nil {
		logger.Debug(ctx, "update creator failed", zap.String("id", id.String()), zap.Error(err))
		return asStoreError(err)
	}
	logger.Debug(ctx, "updated creator", zap.String("id", id.String()))
	return nil
}

// DeleteCreator removes a creator permanently. Deleting a missing creator is
// not an error.
func (u *CreatorUsecase) DeleteCreator(ctx context.Context, rawID string) error {
	id, ok := utils.ParseID(rawID)
	if !ok {
		return nil
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	if err := u.creatorRepo.Delete(ctx, id); err != nil {
		logger.Debug(ctx, "delete creator failed", zap.String("id", id.String()), zap.Error(err))
		return asStoreError(err)
	}
	logger.Debug(ctx, "deleted creator", zap.String("id", id.String()))
	return nil
}

func (u *CreatorUsecase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.callTimeout)
}

// asStoreError keeps errors already classified by the repository and wraps the rest.
func asStoreError(err error) error {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && errors.Is(err, domainerrors.ErrStore) {
		return err
	}
	return domainerrors.StoreError(err.Error(), err)
}
