// Package users persists accounts: a unique username plus the salt and
// verifier of its password.
package users

import (
	"context"

	"github.com/dmitrijs2005/climatetracker/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID. A taken username yields
	// common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
