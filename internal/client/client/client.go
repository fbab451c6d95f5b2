package client

import (
	"context"

	"github.com/dmitrijs2005/carpark/internal/client/models"
)

type Client interface {
	// Do sends body as JSON to path and decodes a 2xx response into out
	// (when out is non-nil).
	Do(ctx context.Context, method, path string, body any, out any) error

	State(ctx context.Context) (*models.State, error)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error

	Park(ctx context.Context, plate string) (*models.State, error)
	Remove(ctx context.Context, req models.RemoveRequest) (*models.State, error)
	UpdateComments(ctx context.Context, spot int, comments string) (*models.State, error)

	UpdateRate(ctx context.Context, rate float64) (*models.State, error)
	Setup(ctx context.Context, capacity int) (*models.State, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) (*models.State, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) error
	DeleteUser(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, current, next string) error
}
