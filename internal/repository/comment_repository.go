package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Comment represents a comment row joined with the author's display name.
// The author is fixed at creation; only the text is ever mutated.
type Comment struct {
	ID        uint64    `json:"id"`
	RecipeID  uint64    `json:"recipe_id"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

const commentSelect = `SELECT co.id, co.recipe_id, co.user_id, COALESCE(u.username, '') AS username, co.text, co.created_at
	FROM comments co
	JOIN users u ON u.id = co.user_id`

// Add inserts a comment and returns the stored row joined with the author's
// display name.
func (r *CommentRepo) Add(ctx context.Context, recipeID, userID uint64, text string) (*Comment, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (recipe_id, user_id, text) VALUES (?,?,?)",
		recipeID, userID, text)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c := &Comment{}
	err = r.DB.QueryRowContext(ctx, commentSelect+" WHERE co.id = ?", id).
		Scan(&c.ID, &c.RecipeID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByRecipe returns a recipe's comments newest first.
func (r *CommentRepo) ListByRecipe(ctx context.Context, recipeID uint64) ([]*Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		commentSelect+" WHERE co.recipe_id = ? ORDER BY co.created_at DESC", recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Comment{}
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.RecipeID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces a comment's text on behalf of requesterID. created_at is
// left untouched. Returns ErrNotFound / ErrForbidden accordingly.
func (r *CommentRepo) Update(ctx context.Context, id, requesterID uint64, text string) error {
	authorID, err := r.authorOf(ctx, id)
	if err != nil {
		return err
	}
	if err := assertOwner(authorID, requesterID); err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE comments SET text = ? WHERE id = ?", text, id)
	return err
}

// Delete removes a comment on behalf of requesterID.
func (r *CommentRepo) Delete(ctx context.Context, id, requesterID uint64) error {
	authorID, err := r.authorOf(ctx, id)
	if err != nil {
		return err
	}
	if err := assertOwner(authorID, requesterID); err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	return err
}

func (r *CommentRepo) authorOf(ctx context.Context, id uint64) (uint64, error) {
	var authorID uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM comments WHERE id = ?", id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return authorID, nil
}
