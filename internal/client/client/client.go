// Package client talks to the userbook HTTP API. Failed envelopes come back
// as *APIError values that match the common sentinels via errors.Is;
// transport failures match common.ErrUnavailable.
package client

import (
	"context"

	"github.com/dmitrijs2005/userbook/internal/client/models"
)

type Client interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	// Create returns the new id and the server's confirmation message.
	Create(ctx context.Context, f models.UserFields) (int64, string, error)
	Update(ctx context.Context, id int64, f models.UserFields) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
	Ping(ctx context.Context) error
}
