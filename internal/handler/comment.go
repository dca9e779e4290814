package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mhartwig22/recipe-book/internal/queue"
	"github.com/mhartwig22/recipe-book/internal/repository"
	queue_publisher "github.com/mhartwig22/recipe-book/internal/service"
)

// CommentHandler implements the per-recipe comment endpoints. Edits and
// deletes are restricted to the comment's author.
type CommentHandler struct {
	Comments *repository.CommentRepo
}

func NewCommentHandler(comments *repository.CommentRepo) *CommentHandler {
	if comments == nil {
		panic("nil repository passed to NewCommentHandler")
	}
	return &CommentHandler{Comments: comments}
}

type commentReq struct {
	Text string `json:"text" form:"text"`
}

// Add handles POST /comments/:recipeId.
func (h *CommentHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	recipeID, err := pathID(c, "recipeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid recipe id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "comment text is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comment, err := h.Comments.Add(ctx, recipeID, userID, text)
	if err != nil {
		return internalErr(c, "failed to add comment", err)
	}

	go func() {
		_ = queue_publisher.PublishActivity(context.Background(), queue.ActivityEvent{
			Kind:       queue.ActivityCommentAdded,
			RecipeID:   recipeID,
			UserID:     userID,
			Text:       text,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, comment)
}

// ListByRecipe handles GET /comments/:recipeId.
func (h *CommentHandler) ListByRecipe(c echo.Context) error {
	recipeID, err := pathID(c, "recipeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid recipe id"})
	}
	comments, err := h.Comments.ListByRecipe(c.Request().Context(), recipeID)
	if err != nil {
		return internalErr(c, "failed to fetch comments", err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Update handles PATCH /comments/:commentId.
func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid comment id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "comment text is required"})
	}

	if err := h.Comments.Update(c.Request().Context(), commentID, userID, text); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to edit this comment"})
		}
		return internalErr(c, "failed to update comment", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment updated"})
}

// Delete handles DELETE /comments/:commentId.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid comment id"})
	}
	if err := h.Comments.Delete(c.Request().Context(), commentID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "comment not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "not authorized to delete this comment"})
		}
		return internalErr(c, "failed to delete comment", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted"})
}
