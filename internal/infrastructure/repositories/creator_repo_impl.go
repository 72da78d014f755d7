package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"creatorverse.backend/internal/domain/entities"
	domainerrors "creatorverse.backend/internal/domain/errors"
	"creatorverse.backend/internal/infrastructure/models"
	"creatorverse.backend/pkg/utils"
)

// CreatorRepository implements the creators store on top of gorm
type CreatorRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCreatorRepository(db *gorm.DB) *CreatorRepository {
	return &CreatorRepository{db: db, now: time.Now}
}

func (r *CreatorRepository) List(ctx context.Context) ([]*entities.Creator, error) {
	var ms []models.Creator
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}

	items := make([]*entities.Creator, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *CreatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Creator, error) {
	var m models.Creator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *CreatorRepository) Create(ctx context.Context, creator *entities.Creator) error {
	m := r.toModel(creator)
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	creator.ID = m.ID
	creator.CreatedAt = m.CreatedAt
	return nil
}

func (r *CreatorRepository) Update(ctx context.Context, creator *entities.Creator) error {
	updates := map[string]interface{}{
		"name":        creator.Name,
		"url":         creator.URL,
		"description": creator.Description,
		"imageURL":    creator.ImageURL,
	}

	// zero rows affected means the creator is already gone; the store treats that as success
	result := r.db.WithContext(ctx).
		Model(&models.Creator{}).
		Where("id = ?", creator.ID).
		Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	return nil
}

func (r *CreatorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Creator{}, "id = ?", id).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *CreatorRepository) Ping(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *CreatorRepository) toEntity(m *models.Creator) *entities.Creator {
	return &entities.Creator{
		ID:          m.ID,
		Name:        m.Name,
		URL:         m.URL,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *CreatorRepository) toModel(e *entities.Creator) *models.Creator {
	return &models.Creator{
		ID:          e.ID,
		Name:        e.Name,
		URL:         e.URL,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		CreatedAt:   e.CreatedAt,
	}
}

// translateError turns a driver error into a StoreError carrying the store's own message.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		msg := pgErr.Message
		if pgErr.Detail != "" {
			msg += " (" + pgErr.Detail + ")"
		}
		return domainerrors.StoreError(msg, err)
	case errors.Is(err, context.Canceled):
		return domainerrors.StoreError("request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return domainerrors.StoreError("store did not respond in time", err)
	default:
		return domainerrors.StoreError(err.Error(), err)
	}
}
