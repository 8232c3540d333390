package userRepo

import (
	"context"

	"servicehub/models"
)

// UserRepository defines read access to user accounts. Account lifecycle is
// owned by the external auth service.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}
