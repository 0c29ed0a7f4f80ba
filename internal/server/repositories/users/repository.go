package users

import (
	"context"

	"github.com/dmitrijs2005/userbook/internal/server/models"
)

// Repository is the single-table access layer. Lookups of missing rows
// return common.ErrNotFound, unique violations common.ErrConflict.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// FindIDByEmail returns the id of the record holding email
	// (case-insensitively), ignoring excludeID. Pass 0 to ignore nothing.
	FindIDByEmail(ctx context.Context, email string, excludeID int64) (int64, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
