package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/simpletwitter/internal/common"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the session token contents. Sub mirrors AccountID; the
// password hash is never embedded.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64       `json:"id"`
	Account   string      `json:"account"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

// ClaimsFor copies the public account fields into a Claims value.
func ClaimsFor(a *models.Account) Claims {
	return Claims{
		AccountID: a.ID,
		Account:   a.Account,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// TokenCodec signs and verifies HS256 session tokens with one secret.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

func NewTokenCodec(secret []byte) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	return &TokenCodec{secret: secret, now: time.Now}, nil
}

// WithClock returns a copy of the codec reading time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue signs claims valid for ttl from now. iat, exp, sub and jti are
// always set by the codec.
func (c *TokenCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := c.now()

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(claims.AccountID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. It returns
// common.ErrTokenExpired for an otherwise valid token past its exp and
// common.ErrTokenMalformed for everything else that fails.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
	}

	if !parsed.Valid || claims.AccountID == 0 {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}
