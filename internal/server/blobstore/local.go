package blobstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/filex"
)

// Written describes a blob that landed on local disk.
type Written struct {
	Path string
	Name string
	Size int64
}

// LocalStore writes blobs into a single flat directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &LocalStore{dir: abs}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Write streams r into a freshly named file. If r yields more than limit
// bytes, nothing is kept and common.ErrorPayloadTooLarge is returned.
func (s *LocalStore) Write(r io.Reader, originalName string, limit int64) (*Written, error) {
	name := GenerateName(originalName)
	fullPath := filepath.Join(s.dir, name)
	tmpPath := fullPath + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tmpPath, err)
	}

	size, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write %s: %w", tmpPath, err)
	}

	if size > limit {
		f.Close()
		os.Remove(tmpPath)
		return nil, common.ErrorPayloadTooLarge
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename %s: %w", tmpPath, err)
	}

	return &Written{Path: fullPath, Name: name, Size: size}, nil
}

// Open returns common.ErrorNotFound when path is not a regular file.
func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	if !filex.Exists(path) {
		return nil, common.ErrorNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Remove deletes path; a missing file reports false without error.
func (s *LocalStore) Remove(path string) (bool, error) {
	return filex.RemoveIfExists(path)
}
