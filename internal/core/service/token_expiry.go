package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/knowcards/appshell/internal/core/domain"
)

// checkExpiry returns an error matching domain.ErrTokenExpired when token is
// a JWT whose exp claim is not after now. The signature is not checked: the
// client cannot verify it and only wants to skip a round trip that is bound
// to fail. Opaque tokens and tokens without exp never expire here.
func checkExpiry(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if now.Before(exp.Time) {
		return nil
	}
	return fmt.Errorf("%w at %s", domain.ErrTokenExpired, exp.Time.UTC().Format(time.RFC3339))
}
