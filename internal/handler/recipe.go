package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mhartwig22/recipe-book/internal/queue"
	"github.com/mhartwig22/recipe-book/internal/repository"
	queue_publisher "github.com/mhartwig22/recipe-book/internal/service"
	"github.com/mhartwig22/recipe-book/internal/utils"
)

// RecipeHandler implements the recipe CRUD endpoints. Create and Update
// accept either JSON bodies or multipart forms; the multipart variant may
// carry an image file under the "image" field.
type RecipeHandler struct {
	Recipes   *repository.RecipeRepo
	UploadDir string
}

func NewRecipeHandler(recipes *repository.RecipeRepo, uploadDir string) *RecipeHandler {
	if recipes == nil {
		panic("nil repository passed to NewRecipeHandler")
	}
	return &RecipeHandler{Recipes: recipes, UploadDir: uploadDir}
}

type recipeFieldsReq struct {
	Title        string    `json:"title" form:"title"`
	Ingredients  string    `json:"ingredients" form:"ingredients"`
	Instructions string    `json:"instructions" form:"instructions"`
	CategoryIDs  *[]uint64 `json:"categoryIds"`
}

// categoryIDsFromForm reads the categoryIds form field, which carries a JSON
// array serialized by the SPA (multipart forms cannot carry nested arrays).
func categoryIDsFromForm(c echo.Context) (*[]uint64, error) {
	raw := strings.TrimSpace(c.FormValue("categoryIds"))
	if raw == "" {
		return nil, nil
	}
	ids := []uint64{}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req recipeFieldsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Ingredients == "" || req.Instructions == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "all fields are required"})
	}

	rec := &repository.Recipe{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		UserID:       userID,
		Categories:   []string{},
	}
	// Optional image: only present on multipart requests.
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		name, err := utils.SaveUpload(fh, h.UploadDir)
		if err != nil {
			return internalErr(c, "failed to store image", err)
		}
		rec.ImagePath = &name
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Recipes.Create(ctx, rec); err != nil {
		return internalErr(c, "failed to create recipe", err)
	}

	go func() {
		_ = queue_publisher.PublishActivity(context.Background(), queue.ActivityEvent{
			Kind:       queue.ActivityRecipeCreated,
			RecipeID:   rec.ID,
			UserID:     userID,
			Title:      rec.Title,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "recipe created successfully",
		"recipeId": rec.ID,
	})
}

// ListAll handles GET /recipes with optional ?categories=1,2 and ?search= filters.
func (h *RecipeHandler) ListAll(c echo.Context) error {
	filter := repository.RecipeFilter{Search: c.QueryParam("search")}
	if raw := strings.TrimSpace(c.QueryParam("categories")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid category id"})
			}
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	recipes, err := h.Recipes.ListAll(c.Request().Context(), filter)
	if err != nil {
		return internalErr(c, "failed to fetch recipes", err)
	}
	return c.JSON(http.StatusOK, recipes)
}

// ListMine handles GET /recipes/me.
func (h *RecipeHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	recipes, err := h.Recipes.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return internalErr(c, "failed to fetch recipes", err)
	}
	return c.JSON(http.StatusOK, recipes)
}

// GetByID handles GET /recipes/:id.
func (h *RecipeHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rec, err := h.Recipes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "recipe not found"})
		}
		return internalErr(c, "failed to fetch recipe", err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Update handles PUT /recipes/:id. Only supplied fields change; a supplied
// categoryIds list replaces the association set wholesale.
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req recipeFieldsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	var upd repository.RecipeUpdate
	if v := strings.TrimSpace(req.Title); v != "" {
		upd.Title = &v
	}
	if v := req.Ingredients; v != "" {
		upd.Ingredients = &v
	}
	if v := req.Instructions; v != "" {
		upd.Instructions = &v
	}
	upd.CategoryIDs = req.CategoryIDs
	if upd.CategoryIDs == nil {
		ids, err := categoryIDsFromForm(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid categoryIds"})
		}
		upd.CategoryIDs = ids
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		name, err := utils.SaveUpload(fh, h.UploadDir)
		if err != nil {
			return internalErr(c, "failed to store image", err)
		}
		upd.ImagePath = &name
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Recipes.Update(ctx, id, userID, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "recipe not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to modify this recipe"})
		}
		return internalErr(c, "failed to update recipe", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recipe updated successfully"})
}

// Delete handles DELETE /recipes/:id.
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Recipes.Delete(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "recipe not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to delete this recipe"})
		}
		return internalErr(c, "failed to delete recipe", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recipe deleted successfully"})
}
