package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 token whose subject is the member ID.
// The gateway does not log members in itself; this is used by portalctl to
// mint tokens for local testing and by tests.
func IssueToken(secret []byte, memberID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(memberID, 10),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}
