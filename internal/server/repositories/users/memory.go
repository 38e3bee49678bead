package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// MemoryRepository keeps users in process memory. Username and email are
// unique and compared exactly as stored, like the users table constraints.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  []*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.UserName == user.UserName || u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	r.nextID++
	c := *user
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.users = append(r.users, &c)

	out := c
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.UserName == login {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.UserName == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// UsernameByID is used by the in-memory file catalog to emulate its join.
func (r *MemoryRepository) UsernameByID(id int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u.UserName, true
		}
	}
	return "", false
}
