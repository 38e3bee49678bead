package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	ListFiles(ctx context.Context) ([]*models.File, error)
	Upload(ctx context.Context, name string, r io.Reader) (*models.File, error)
	Download(ctx context.Context, id int64, w io.Writer) (int64, error)
	Delete(ctx context.Context, id int64) error
	Share(ctx context.Context, id int64, email, message string) (*models.ShareResult, error)
}
