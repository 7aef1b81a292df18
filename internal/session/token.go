package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenKey signs issued tokens. The token is opaque to every consumer: the
// store compares it as a plain string and the client never parses it back,
// so the key only needs to make concurrent logins produce distinct values.
var tokenKey = []byte("shopcart-client-signing-key")

// Claims carried inside an issued session token.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken mints an opaque token for the account, embedding an expiry
// of now+ttl. The expiry is advisory: nothing in the client enforces it.
func GenerateToken(accountID string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(tokenKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
