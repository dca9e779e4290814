package utils // package utils provides helper functions for token creation and hashing

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// BearerToken represents a signed JWT along with its expiry. The Token field
// contains the serialized JWT string presented in the Authorization header
// when calling protected endpoints.
type BearerToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewBearerToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the user's email, and a TTL in minutes.
// The JWT carries the claims {id, email, exp, iat}; id and email together
// identify the authenticated user to downstream handlers.
func NewBearerToken(secret string, userID uint64, email string, ttlMin int) (BearerToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "id":    userID,
        "email": email,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    // Sign the token with the provided secret and obtain the string form.
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return BearerToken{}, err
    }
    return BearerToken{Token: signed, Exp: exp}, nil
}
