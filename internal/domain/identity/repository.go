package identity

import (
	"context"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Repository defines persistence operations for users
type Repository interface {
	shared.Repository[User]

	// FindByUsername looks a user up by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail looks a user up by email address
	FindByEmail(ctx context.Context, email string) (*User, error)
}
