package users

import (
	"context"

	"github.com/dmitrijs2005/authd/internal/server/models"
)

// Repository is the credential store contract. Create must report
// common.ErrorAlreadyExists when the username is taken, including when the
// conflict is only detected by the uniqueness constraint at insert time.
type Repository interface {
	Create(ctx context.Context, username string, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
