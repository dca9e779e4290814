package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mhartwig22/recipe-book/internal/config"
    "github.com/mhartwig22/recipe-book/internal/repository"
    "github.com/mhartwig22/recipe-book/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Username string `json:"username" form:"username"`
}
type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register: hash the password, create the user, report its id.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Username, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already exists"})
		}
		return internalErr(c, "registration failed", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"userId":  uid,
	})
}

// Login: verify credentials and issue a bearer token. Unknown email and
// wrong password answer the same generic 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		return internalErr(c, "login failed", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	tok, err := utils.NewBearerToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.TokenTTLMin)
	if err != nil {
		return internalErr(c, "login failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login successful",
		"token":   tok.Token,
		"expires": tok.Exp,
	})
}
