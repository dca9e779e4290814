package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Category represents a row in the categories table. Names are unique and
// categories have a lifecycle independent of recipes.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// ListAll returns every category ordered by id.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Category{}
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a category and returns ErrDuplicate when the name exists.
func (r *CategoryRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Assign links a category to a recipe owned by requesterID. The association's
// primary key rejects duplicate assignments, surfaced as ErrDuplicate.
func (r *CategoryRepo) Assign(ctx context.Context, recipeID, categoryID, requesterID uint64) error {
	var ownerID uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM recipes WHERE id = ?", recipeID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := assertOwner(ownerID, requesterID); err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO recipe_categories (recipe_id, category_id) VALUES (?,?)", recipeID, categoryID)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}
