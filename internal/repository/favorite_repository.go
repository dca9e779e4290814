package repository

import (
	"context"
	"database/sql"
)

// FavoriteRepo manages the (user, recipe) bookmark pairs. Existence of a row
// means "favorited"; the composite primary key rejects duplicates.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// Add inserts a favorite pair. ErrDuplicate is returned when the recipe is
// already favorited by this user.
func (r *FavoriteRepo) Add(ctx context.Context, userID, recipeID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO favorites (user_id, recipe_id) VALUES (?,?)", userID, recipeID)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Remove deletes a favorite pair. The delete is idempotent: removing a pair
// that never existed is still a success.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, recipeID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?", userID, recipeID)
	return err
}

// ListByUser returns the full recipe records the user has favorited,
// most recently favorited first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]*Recipe, error) {
	const q = `SELECT r.id, r.title, r.ingredients, r.instructions, r.image_path, r.user_id, r.created_at
	           FROM recipes r
	           JOIN favorites f ON r.id = f.recipe_id
	           WHERE f.user_id = ?
	           ORDER BY f.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Recipe{}
	for rows.Next() {
		rec := &Recipe{Categories: []string{}}
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Ingredients, &rec.Instructions,
			&rec.ImagePath, &rec.UserID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
