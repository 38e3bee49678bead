package users

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
