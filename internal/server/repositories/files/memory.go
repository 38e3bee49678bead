package files

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// UsernameLookup resolves an uploader id to a name.
type UsernameLookup func(id int64) (string, bool)

// MemoryRepository is an in-process catalog with the same observable
// behaviour as the Postgres one.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	files    map[int64]*models.File
	username UsernameLookup
}

func NewMemoryRepository(lookup UsernameLookup) *MemoryRepository {
	return &MemoryRepository{files: map[int64]*models.File{}, username: lookup}
}

func (r *MemoryRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	file.ID = r.nextID
	file.UploadedAt = time.Now()

	c := *file
	r.files[c.ID] = &c
	return file, nil
}

func (r *MemoryRepository) AttachRemoteLocator(ctx context.Context, id int64, bucket, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return common.ErrorNotFound
	}
	f.S3Bucket, f.S3Key = &bucket, &key
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.FileListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.FileListItem, 0, len(r.files))
	for _, f := range r.files {
		item := &models.FileListItem{File: *f, UploadedByUsername: models.UnknownUploader}
		if r.username != nil {
			if name, ok := r.username(f.UploadedBy); ok {
				item.UploadedByUsername = name
			}
		}
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].UploadedAt.Equal(result[j].UploadedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *f
	return &c, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.files, id)
	return nil
}
