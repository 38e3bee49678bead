// Package services contains server-side business logic. UserService owns
// registration, login and session tokens; FileService owns the upload,
// download, delete and share flows.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/auth"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
)

const bcryptCost = 10

// dummyHash is compared against on unknown usernames so that a miss costs
// about as much as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("fileshare-no-such-user"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
})

// LoginResult is a signed session token plus the account it belongs to.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	jwtSecret        []byte
	validityDuration time.Duration
	logger           logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:               db,
		repomanager:      m,
		jwtSecret:        []byte(cfg.SecretKey),
		validityDuration: cfg.TokenValidityDuration,
		logger:           logger.With("module", "users"),
	}
}

// Register creates an account. The first account ever created becomes admin.
//
// The existence check, the count and the insert share one transaction at the
// default isolation level. Two concurrent first registrations can still both
// see an empty table; the UNIQUE constraints only protect names and emails.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password too long", common.ErrorValidation)
		}
		s.logger.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}

		role := models.RoleUser
		if n == 0 {
			role = models.RoleAdmin
		}

		created, err = repo.Create(ctx, &models.User{
			UserName:     username,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "register user", "username", username, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "id", created.ID, "username", created.UserName, "role", created.Role)
	return created, nil
}

// Login checks the password and issues a session token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "lookup user", "username", username, "error", err)
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(auth.ClaimsFor(user), s.jwtSecret, s.validityDuration)
	if err != nil {
		s.logger.Error(ctx, "sign token", "error", err)
		return nil, common.ErrorInternal
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Authenticate verifies a bearer token.
func (s *UserService) Authenticate(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
