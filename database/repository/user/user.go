package userRepo

import (
	"context"

	"eventra/models"
)

// UserRepository defines the read access the messaging core needs into the
// accounts collection.
type UserRepository interface {
	// GetByID returns nil, nil when no user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetManyByID returns the found users keyed by id; missing ids are
	// simply absent from the map.
	GetManyByID(ctx context.Context, ids []string) (map[string]models.User, error)
}
