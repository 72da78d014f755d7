package repositories

import (
	"context"

	"github.com/google/uuid"

	"creatorverse.backend/internal/domain/entities"
)

// CreatorRepository is the call contract of the creators store.
type CreatorRepository interface {
	// List returns every creator, newest first.
	List(ctx context.Context) ([]*entities.Creator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Creator, error)
	// Create assigns ID and CreatedAt on the passed creator.
	Create(ctx context.Context, creator *entities.Creator) error
	// Update rewrites the editable fields; zero rows affected is not an error.
	Update(ctx context.Context, creator *entities.Creator) error
	// Delete is a hard delete; deleting a missing row is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
