package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects the token's id and email claims into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware wraps protected routes so that handlers can access the
// authenticated user via `c.Get("user_id")` and `c.Get("email")`.
//
// Every authentication failure answers 401: a missing or malformed header,
// a bad signature, and an expired token alike. 403 is reserved for
// ownership denials raised further down the stack.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse the token, pinning the signing method to HMAC so a
            // token signed with a different algorithm is rejected.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid claims"})
            }
            // Numeric JSON values decode as float64; normalize the id to
            // uint64 here so handlers do not repeat the conversion.
            id, ok := claims["id"].(float64)
            if !ok || id <= 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid claims"})
            }
            email, _ := claims["email"].(string)

            c.Set("user_id", uint64(id))
            c.Set("email", email)
            return next(c)
        }
    }
}
