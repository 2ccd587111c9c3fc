package token

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// access tokens expire after 24 hours unless overridden by TOKEN_EXPIRATION_HOURS
const defaultExpirationHours = 24

var ErrInvalid = errors.New("invalid token")

type Claims struct {
	UserId    string
	TokenId   string
	ExpiresAt time.Time
}

func Expiration() time.Duration {
	if h := os.Getenv("TOKEN_EXPIRATION_HOURS"); h != "" {
		if parsed, err := strconv.Atoi(h); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Hour
		}
	}
	return defaultExpirationHours * time.Hour
}

// Sign issues a signed bearer token bound to userId, expiring after
// Expiration().
func Sign(userId string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userId,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(Expiration())),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	if err != nil {
		return "", errors.Wrap(err, "error signing token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a bearer token and returns its
// claims. Revocation is checked separately against durable storage -- a token
// that verifies here may still have been revoked by logout.
func Verify(tokenStr string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret(), nil
	})

	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalid
	}

	return &Claims{
		UserId:    claims.Subject,
		TokenId:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Hash returns the sha256 hex digest of a raw token. Only hashes are stored in
// the revocation table.
func Hash(tokenStr string) string {
	hashBytes := sha256.Sum256([]byte(tokenStr))
	return hex.EncodeToString(hashBytes[:])
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}
