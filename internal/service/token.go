package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sahilphalke/PlayTurf/internal/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the two bearer-token kinds. Access and
// refresh tokens are signed with distinct secrets so that neither secret
// can mint tokens of the other kind. The issuer is immutable after
// construction and safe for concurrent use.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(accessSecret) == "" || strings.TrimSpace(refreshSecret) == "" {
		return nil, fmt.Errorf("token signing secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("access and refresh signing secrets must differ")
	}

	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (i *TokenIssuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// IssueAccessToken signs a short-lived token carrying identifier and role.
// Claims stay minimal; anything that can go stale (email, name) is looked
// up against the store instead of being embedded.
func (i *TokenIssuer) IssueAccessToken(userID string, role string) (string, error) {
	return i.sign(tokenClaims{
		Role: role,
		Type: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(i.accessTTL)),
		},
	}, i.accessSecret)
}

func (i *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	return i.sign(tokenClaims{
		Type: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(i.refreshTTL)),
		},
	}, i.refreshSecret)
}

func (i *TokenIssuer) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	return i.verify(tokenString, i.accessSecret, tokenTypeAccess)
}

func (i *TokenIssuer) VerifyRefreshToken(tokenString string) (*model.AuthClaims, error) {
	return i.verify(tokenString, i.refreshSecret, tokenTypeRefresh)
}

func (i *TokenIssuer) sign(claims tokenClaims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrCryptoFailure, err)
	}
	return signed, nil
}

func (i *TokenIssuer) verify(tokenString string, secret []byte, wantType string) (*model.AuthClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	// An expired token is distinct from a forged or malformed one so the
	// caller can choose between silent refresh and re-login.
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, model.ErrTokenExpired
	}
	if err != nil || !parsed.Valid {
		return nil, model.ErrTokenInvalid
	}

	if claims.Type != wantType || claims.Subject == "" {
		return nil, model.ErrTokenInvalid
	}

	return &model.AuthClaims{UserID: claims.Subject, Role: claims.Role}, nil
}
