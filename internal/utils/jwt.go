package utils // package utils provides helper functions for operator token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// OperatorToken represents a signed JWT along with its expiry.  The Token
// field contains the JWT string.  Exp stores the expiration timestamp as a
// time.Time.  Operator tokens are encoded in the Authorization header when
// calling the support inbox and the workbook download endpoint.
type OperatorToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewOperatorToken builds and signs an HS256 JWT for a support operator.
// It takes the signing secret, the operator id, and a TTL in minutes, and
// returns an OperatorToken with the signed string and its expiration.  The
// JWT carries standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).  The role is always "OPERATOR"; the verifying
// middleware rejects anything else.
func NewOperatorToken(secret, operatorID string, ttlMin int) (OperatorToken, error) {
	// Calculate the expiration time by adding the TTL to the current UTC time.
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  operatorID,
		"role": "OPERATOR",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return OperatorToken{}, err
	}
	return OperatorToken{Token: signed, Exp: exp}, nil
}
