// Package auth issues and verifies the HS256 session tokens carried as
// bearer credentials.
//
// Verification is stateless: there is no revocation list, so a leaked token
// stays valid until it expires. Changing the secret key invalidates every
// outstanding token at once.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified session payload: who the caller is and what they
// may do.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64       `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// ClaimsFor derives session claims from a stored user.
func ClaimsFor(u *models.User) Claims {
	return Claims{UserID: u.ID, Username: u.UserName, Role: u.Role}
}

// GenerateToken signs c with secretKey. Any expiry already in c is replaced
// by now+validityDuration.
func GenerateToken(c Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry. Expired tokens give
// common.ErrTokenExpired; everything else wrong gives common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if _, err := models.ParseRole(string(claims.Role)); err != nil {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
