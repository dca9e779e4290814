package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mhartwig22/recipe-book/internal/utils"
)

const testSecret = "unit-test-secret"

func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recipes/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := invoke(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	rec, _ := invoke(t, "Token abc123")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _ := invoke(t, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewBearerToken("other-secret", 3, "x@y.z", 60)
	require.NoError(t, err)

	rec, _ := invoke(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewBearerToken(testSecret, 3, "x@y.z", -5)
	require.NoError(t, err)

	rec, _ := invoke(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewBearerToken(testSecret, 42, "cook@example.com", 60)
	require.NoError(t, err)

	rec, c := invoke(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint64(42), c.Get("user_id"))
	require.Equal(t, "cook@example.com", c.Get("email"))
}
