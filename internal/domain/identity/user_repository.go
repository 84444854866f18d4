package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByUsername looks the user up by normalized username
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// CountActiveAdmins returns the number of active users holding the admin role
	CountActiveAdmins(ctx context.Context) (int64, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	Keyword  string
	Role     *Role
	Active   *bool
	Page     int
	PageSize int
}
