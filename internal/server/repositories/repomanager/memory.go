package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same process-local repositories
// whatever handle it is given, so transactions are not isolated. Meant for
// tests and local experiments.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
	files *files.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	u := users.NewMemoryRepository()
	return &InMemoryRepositoryManager{
		users: u,
		files: files.NewMemoryRepository(u.UsernameByID),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Files(dbx.DBTX) files.Repository { return m.files }
