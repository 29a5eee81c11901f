package users

import (
	"context"

	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in ID and CreatedAt. A duplicate
	// username or email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// ExistsByUsernameOrEmail reports whether either value is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
