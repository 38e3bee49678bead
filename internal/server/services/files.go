package services

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/blobstore"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/notify"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
)

type FileService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	store         *blobstore.Store
	notifier      *notify.Notifier
	maxUploadSize int64
	logger        logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store *blobstore.Store, notifier *notify.Notifier,
	cfg *config.Config, logger logging.Logger) *FileService {
	return &FileService{
		db:            db,
		repomanager:   m,
		store:         store,
		notifier:      notifier,
		maxUploadSize: cfg.MaxUploadSize,
		logger:        logger.With("module", "files"),
	}
}

// Upload stores the bytes locally, records them in the catalog and then tries
// the mirror. A catalog failure removes the local bytes again; a mirror
// failure only leaves the record without a remote locator.
func (s *FileService) Upload(ctx context.Context, r io.Reader, originalName, mimeType string, uploadedBy int64) (*models.File, error) {
	w, err := s.store.Write(r, originalName, s.maxUploadSize)
	if err != nil {
		if errors.Is(err, common.ErrorPayloadTooLarge) {
			return nil, err
		}
		s.logger.Error(ctx, "write blob", "name", originalName, "error", err)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Files(s.db)

	f, err := repo.Create(ctx, &models.File{
		OriginalName: originalName,
		FileName:     w.Name,
		FilePath:     w.Path,
		MimeType:     mimeType,
		Size:         w.Size,
		UploadedBy:   uploadedBy,
	})
	if err != nil {
		s.logger.Error(ctx, "insert file record", "name", originalName, "error", err)
		s.store.Discard(ctx, w.Path)
		return nil, common.ErrorInternal
	}

	key := blobstore.RemoteKey(w.Name)
	if s.store.Mirror(ctx, w.Path, key, mimeType) == blobstore.OutcomeDone {
		bucket := s.store.Bucket()
		if err := repo.AttachRemoteLocator(ctx, f.ID, bucket, key); err != nil {
			s.logger.Warn(ctx, "record remote locator", "id", f.ID, "error", err)
		} else {
			f.S3Bucket, f.S3Key = &bucket, &key
		}
	}

	s.logger.Info(ctx, "file uploaded", "id", f.ID, "size", f.Size, "by", uploadedBy)
	return f, nil
}

func (s *FileService) List(ctx context.Context) ([]*models.FileListItem, error) {
	items, err := s.repomanager.Files(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list files", "error", err)
		return nil, common.ErrorInternal
	}
	return items, nil
}

// Get returns the catalog record or common.ErrorNotFound.
func (s *FileService) Get(ctx context.Context, id int64) (*models.File, error) {
	f, err := s.repomanager.Files(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "get file", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return f, nil
}

// Open returns the record and a reader over its bytes. The caller closes the
// reader.
func (s *FileService) Open(ctx context.Context, id int64) (*models.File, io.ReadCloser, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, src, err := s.store.Open(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug(ctx, "file opened", "id", id, "source", src)
	return f, rc, nil
}

// Delete removes blobs best-effort and then the catalog row. Once it returns
// nil the file is gone from listings regardless of how blob removal went.
func (s *FileService) Delete(ctx context.Context, id int64) (*blobstore.RemoveResult, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res := s.store.Remove(ctx, f)

	if err := s.repomanager.Files(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "delete file record", "id", id, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "file deleted", "id", id, "local", res.Local, "remote", res.Remote)
	return &res, nil
}

// Share notifies recipient about file id. The link is built by the caller
// because only it knows the public address.
func (s *FileService) Share(ctx context.Context, id int64, recipient, note, sharedBy, link string) (*notify.ShareResult, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.notifier.Share(ctx, notify.Share{
		File:      f,
		Recipient: recipient,
		Note:      note,
		SharedBy:  sharedBy,
		Link:      link,
	})
}
