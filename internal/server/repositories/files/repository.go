package files

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Repository is the metadata catalog for uploaded files.
type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	AttachRemoteLocator(ctx context.Context, id int64, bucket, key string) error
	List(ctx context.Context) ([]*models.FileListItem, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Delete(ctx context.Context, id int64) error
}
