// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mhartwig22/recipe-book/internal/handler"
	"github.com/mhartwig22/recipe-book/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to any resource:
// the health check and the static file server for uploaded images.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	e.GET("/healthz", handler.Health)
	// Uploaded recipe images are served directly from disk.
	e.Static("/uploads", uploadDir)
}

// RegisterAuth registers registration and login. Both are unauthenticated;
// limiter guards them against credential brute forcing and may be nil.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterRecipes registers the recipe endpoints. Listing and fetching are
// public; everything that writes requires a valid bearer token.
func RegisterRecipes(e *echo.Echo, h *handler.RecipeHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	e.GET("/recipes", h.ListAll)
	e.GET("/recipes/me", h.ListMine, auth)
	e.GET("/recipes/:id", h.GetByID)
	e.POST("/recipes", h.Create, auth)
	e.PUT("/recipes/:id", h.Update, auth)
	e.DELETE("/recipes/:id", h.Delete, auth)
}

// RegisterCategories registers category listing (public), creation and
// assignment to an owned recipe (both protected).
func RegisterCategories(e *echo.Echo, h *handler.CategoryHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	e.GET("/categories", h.ListAll)
	e.POST("/categories", h.Create, auth)
	e.POST("/categories/assign/:recipeId", h.Assign, auth)
}

// RegisterComments registers the comment endpoints. Reading is public;
// adding, editing and deleting require authentication.
func RegisterComments(e *echo.Echo, h *handler.CommentHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	e.GET("/comments/:recipeId", h.ListByRecipe)
	e.POST("/comments/:recipeId", h.Add, auth)
	e.PATCH("/comments/:commentId", h.Update, auth)
	e.DELETE("/comments/:commentId", h.Delete, auth)
}

// RegisterFavorites registers the favorites endpoints, all protected.
func RegisterFavorites(e *echo.Echo, h *handler.FavoriteHandler, jwtSecret string) {
	g := e.Group("/favorites", middleware.JWTAuth(jwtSecret))
	g.GET("/me", h.ListMine)
	g.POST("/:recipeId", h.Add)
	g.DELETE("/:recipeId", h.Remove)
}
