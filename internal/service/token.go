package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// AccessTokenExpiry reads the exp claim of a JWT access token without verifying
// its signature. The API is the only party that verifies tokens; this is used
// for local display and to drop sessions that are already expired.
func AccessTokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("decode access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// AccessTokenExpired reports whether token's exp is at or before now.
// Tokens that cannot be decoded are reported as not expired.
func AccessTokenExpired(token string, now time.Time) bool {
	exp, err := AccessTokenExpiry(token)
	if err != nil {
		return false
	}
	return !exp.After(now)
}
