package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// checkTokenExpiry inspects a JWT-shaped bearer token and fails fast with
// [ErrUnauthorized] when its exp claim lies in the past, saving a doomed
// round trip. Tokens that are empty or not JWTs pass through untouched;
// the remote store remains the authority on their validity.
func checkTokenExpiry(token string) error {
	if token == "" || strings.Count(token, ".") != 2 {
		return nil
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}

	if exp.Before(time.Now()) {
		return fmt.Errorf("%w: bearer token expired at %s", ErrUnauthorized, exp.Format(time.RFC3339))
	}

	return nil
}
