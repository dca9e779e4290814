package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhartwig22/recipe-book/internal/repository"
)

// FavoriteHandler implements a user's bookmark list.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
}

func NewFavoriteHandler(favorites *repository.FavoriteRepo) *FavoriteHandler {
	if favorites == nil {
		panic("nil repository passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: favorites}
}

// Add handles POST /favorites/:recipeId. Favoriting twice is a conflict.
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	recipeID, err := pathID(c, "recipeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid recipe id"})
	}
	if err := h.Favorites.Add(c.Request().Context(), userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "already in favorites"})
		}
		return internalErr(c, "failed to add favorite", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recipe added to favorites"})
}

// Remove handles DELETE /favorites/:recipeId. Removal is idempotent; the
// response is a success even when the pair never existed.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	recipeID, err := pathID(c, "recipeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid recipe id"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), userID, recipeID); err != nil {
		return internalErr(c, "failed to remove favorite", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recipe removed from favorites"})
}

// ListMine handles GET /favorites/me.
func (h *FavoriteHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	recipes, err := h.Favorites.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return internalErr(c, "failed to fetch favorites", err)
	}
	return c.JSON(http.StatusOK, recipes)
}
