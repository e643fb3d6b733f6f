package owner

import (
	"context"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Repository defines persistence operations for owners
type Repository interface {
	shared.Repository[Owner]

	// FindByPhone looks an owner up by phone number
	FindByPhone(ctx context.Context, phone string) (*Owner, error)

	// FindByEmail looks an owner up by email address
	FindByEmail(ctx context.Context, email string) (*Owner, error)
}

// PetRepository defines persistence operations for pets
type PetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Pet, error)
	Save(ctx context.Context, pet *Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
}
