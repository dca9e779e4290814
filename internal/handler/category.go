package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mhartwig22/recipe-book/internal/repository"
)

// CategoryHandler implements listing, creation and recipe assignment of
// categories.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	if categories == nil {
		panic("nil repository passed to NewCategoryHandler")
	}
	return &CategoryHandler{Categories: categories}
}

// ListAll handles GET /categories.
func (h *CategoryHandler) ListAll(c echo.Context) error {
	cats, err := h.Categories.ListAll(c.Request().Context())
	if err != nil {
		return internalErr(c, "failed to fetch categories", err)
	}
	return c.JSON(http.StatusOK, cats)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}

	id, err := h.Categories.Create(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "category already exists"})
		}
		return internalErr(c, "failed to create category", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "category created",
		"categoryId": id,
	})
}

// Assign handles POST /categories/assign/:recipeId. Only the recipe's owner
// may assign categories to it.
func (h *CategoryHandler) Assign(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	recipeID, err := pathID(c, "recipeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid recipe id"})
	}
	var req struct {
		CategoryID uint64 `json:"categoryId" form:"categoryId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.CategoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "category id is required"})
	}

	if err := h.Categories.Assign(c.Request().Context(), recipeID, req.CategoryID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "recipe not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to modify this recipe"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"message": "category already assigned"})
		}
		return internalErr(c, "failed to assign category", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category assigned to recipe"})
}
