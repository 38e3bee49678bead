package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// Outcome is the result of one best-effort backend operation.
type Outcome string

const (
	OutcomeDone    Outcome = "done"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Source tells which backend served a read.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// RemoveResult reports each backend separately; a failure on one side does
// not stop the other.
type RemoveResult struct {
	Local  Outcome
	Remote Outcome
}

// Store combines the local directory with the optional mirror. A nil mirror
// means mirroring is disabled.
type Store struct {
	local  *LocalStore
	mirror *S3Mirror
	logger logging.Logger
}

func New(local *LocalStore, mirror *S3Mirror, logger logging.Logger) *Store {
	return &Store{local: local, mirror: mirror, logger: logger.With("module", "blobstore")}
}

// Bucket is empty when mirroring is disabled.
func (s *Store) Bucket() string {
	if s.mirror == nil {
		return ""
	}
	return s.mirror.Bucket()
}

// Dir is the resolved local upload directory.
func (s *Store) Dir() string { return s.local.Dir() }

// Write stores r locally under a generated name.
func (s *Store) Write(r io.Reader, originalName string, limit int64) (*Written, error) {
	w, err := s.local.Write(r, originalName, limit)
	if err != nil {
		count(opWrite, backendLocal, OutcomeFailed)
		return nil, err
	}
	count(opWrite, backendLocal, OutcomeDone)
	return w, nil
}

// Discard drops a local blob that never made it into the catalog.
func (s *Store) Discard(ctx context.Context, path string) {
	if _, err := s.local.Remove(path); err != nil {
		s.logger.Warn(ctx, "discard local blob", "path", path, "error", err)
	}
}

// Mirror copies the local file to the bucket.
func (s *Store) Mirror(ctx context.Context, localPath, key, contentType string) Outcome {
	if s.mirror == nil {
		count(opMirror, backendS3, OutcomeSkipped)
		return OutcomeSkipped
	}

	if err := s.mirror.Put(ctx, localPath, key, contentType); err != nil {
		s.logger.Warn(ctx, "mirror upload failed", "key", key, "error", err)
		count(opMirror, backendS3, OutcomeFailed)
		return OutcomeFailed
	}

	count(opMirror, backendS3, OutcomeDone)
	return OutcomeDone
}

// Open prefers the remote copy when the record has a locator; any remote
// error falls back to the local file.
func (s *Store) Open(ctx context.Context, f *models.File) (io.ReadCloser, Source, error) {
	if f.HasRemote() && s.mirror != nil {
		rc, err := s.mirror.Get(ctx, *f.S3Bucket, *f.S3Key)
		if err == nil {
			count(opRead, backendS3, OutcomeDone)
			return rc, SourceRemote, nil
		}
		count(opRead, backendS3, OutcomeFailed)
		s.logger.Warn(ctx, "remote read failed, trying local", "id", f.ID, "error", err)
	}

	rc, err := s.local.Open(f.FilePath)
	if err != nil {
		count(opRead, backendLocal, OutcomeFailed)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		s.logger.Error(ctx, "local read failed", "id", f.ID, "error", err)
		return nil, "", common.ErrorNotFound
	}

	count(opRead, backendLocal, OutcomeDone)
	return rc, SourceLocal, nil
}

// Remove deletes both copies, best-effort.
func (s *Store) Remove(ctx context.Context, f *models.File) RemoveResult {
	res := RemoveResult{Local: OutcomeSkipped, Remote: OutcomeSkipped}

	if f.HasRemote() && s.mirror != nil {
		if err := s.mirror.Delete(ctx, *f.S3Bucket, *f.S3Key); err != nil {
			s.logger.Warn(ctx, "remote delete failed", "id", f.ID, "error", err)
			res.Remote = OutcomeFailed
		} else {
			res.Remote = OutcomeDone
		}
		count(opRemove, backendS3, res.Remote)
	}

	removed, err := s.local.Remove(f.FilePath)
	switch {
	case err != nil:
		s.logger.Warn(ctx, "local delete failed", "id", f.ID, "error", err)
		res.Local = OutcomeFailed
	case removed:
		res.Local = OutcomeDone
	}
	count(opRemove, backendLocal, res.Local)

	return res
}
