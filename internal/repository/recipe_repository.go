// recipe_repository.go contains data access for recipes and their category
// associations. Ownership is enforced here so that every handler goes through
// the same predicate regardless of which mutation it performs.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Recipe represents a recipe row. Category names are aggregated from the
// recipe_categories join and are always present (empty slice when none).
type Recipe struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	ImagePath    *string   `json:"image_path"`
	UserID       uint64    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	Categories   []string  `json:"categories"`
}

// RecipeFilter narrows the public listing. CategoryIDs requires at least one
// association to any of the given ids; Search matches the title substring
// case-insensitively. Both are optional.
type RecipeFilter struct {
	CategoryIDs []uint64
	Search      string
}

// RecipeUpdate carries the optional fields of a partial update. A nil field
// leaves the column untouched. CategoryIDs, when non-nil, replaces the full
// association set even if the list is empty.
type RecipeUpdate struct {
	Title        *string
	Ingredients  *string
	Instructions *string
	ImagePath    *string
	CategoryIDs  *[]uint64
}

// setClause appends only the supplied columns, keeping the SQL parameterized.
func (u RecipeUpdate) setClause() (string, []any) {
	cols := []string{}
	args := []any{}
	if u.Title != nil {
		cols = append(cols, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Ingredients != nil {
		cols = append(cols, "ingredients = ?")
		args = append(args, *u.Ingredients)
	}
	if u.Instructions != nil {
		cols = append(cols, "instructions = ?")
		args = append(args, *u.Instructions)
	}
	if u.ImagePath != nil {
		cols = append(cols, "image_path = ?")
		args = append(args, *u.ImagePath)
	}
	return strings.Join(cols, ", "), args
}

type RecipeRepo struct{ DB *sql.DB }

func NewRecipeRepo(db *sql.DB) *RecipeRepo { return &RecipeRepo{DB: db} }

// Create inserts a new recipe owned by rec.UserID. On success the ID and
// CreatedAt fields are populated from the database.
func (r *RecipeRepo) Create(ctx context.Context, rec *Recipe) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO recipes (title, ingredients, instructions, user_id, image_path) VALUES (?,?,?,?,?)",
		rec.Title, rec.Ingredients, rec.Instructions, rec.UserID, rec.ImagePath)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	// Follow-up SELECT to pick up the server-assigned creation timestamp.
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM recipes WHERE id = ?", rec.ID).Scan(&rec.CreatedAt)
}

// ListAll returns recipes matching the filter, newest first, each with its
// aggregated category names. The category filter uses a subquery so that the
// aggregation still reports every assigned category, not only the matching ones.
func (r *RecipeRepo) ListAll(ctx context.Context, f RecipeFilter) ([]*Recipe, error) {
	where := []string{}
	args := []any{}

	if len(f.CategoryIDs) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(f.CategoryIDs)), ",")
		where = append(where, "r.id IN (SELECT rc2.recipe_id FROM recipe_categories rc2 WHERE rc2.category_id IN ("+ph+"))")
		for _, id := range f.CategoryIDs {
			args = append(args, id)
		}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "LOWER(r.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ") + " "
	}

	q := `SELECT r.id, r.title, r.ingredients, r.instructions, r.image_path, r.user_id, r.created_at,
		COALESCE(GROUP_CONCAT(c.name ORDER BY c.name), '') AS categories
		FROM recipes r
		LEFT JOIN recipe_categories rc ON rc.recipe_id = r.id
		LEFT JOIN categories c ON c.id = rc.category_id
		` + cond + `GROUP BY r.id
		ORDER BY r.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Recipe{}
	for rows.Next() {
		rec := &Recipe{}
		var cats string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Ingredients, &rec.Instructions,
			&rec.ImagePath, &rec.UserID, &rec.CreatedAt, &cats); err != nil {
			return nil, err
		}
		rec.Categories = splitNames(cats)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOwner returns every recipe owned by the given user, unfiltered.
func (r *RecipeRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*Recipe, error) {
	const q = `SELECT id, title, ingredients, instructions, image_path, user_id, created_at
	           FROM recipes WHERE user_id = ? ORDER BY created_at DESC`
	return r.scanRecipes(ctx, q, ownerID)
}

// GetByID returns one recipe plus its assigned category names.
// ErrNotFound is returned when the id does not exist.
func (r *RecipeRepo) GetByID(ctx context.Context, id uint64) (*Recipe, error) {
	rec := &Recipe{Categories: []string{}}
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, ingredients, instructions, image_path, user_id, created_at FROM recipes WHERE id = ?",
		id).Scan(&rec.ID, &rec.Title, &rec.Ingredients, &rec.Instructions,
		&rec.ImagePath, &rec.UserID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.name FROM categories c
		 JOIN recipe_categories rc ON c.id = rc.category_id
		 WHERE rc.recipe_id = ? ORDER BY c.name`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		rec.Categories = append(rec.Categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies a partial update on behalf of requesterID. It returns
// ErrNotFound when the recipe is missing and ErrForbidden when the requester
// is not the owner. Field changes and the association replacement happen in
// one transaction. The named result lets the deferred commit report its
// failure to the caller.
func (r *RecipeRepo) Update(ctx context.Context, id, requesterID uint64, upd RecipeUpdate) (err error) {
	var tx *sql.Tx
	tx, err = r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var ownerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT user_id FROM recipes WHERE id = ?", id).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return err
	}
	if err = assertOwner(ownerID, requesterID); err != nil {
		return err
	}

	if set, args := upd.setClause(); set != "" {
		args = append(args, id)
		if _, err = tx.ExecContext(ctx, "UPDATE recipes SET "+set+" WHERE id = ?", args...); err != nil {
			return err
		}
	}

	if upd.CategoryIDs != nil {
		// Wholesale replacement: drop all links, then reinsert the given set.
		if _, err = tx.ExecContext(ctx, "DELETE FROM recipe_categories WHERE recipe_id = ?", id); err != nil {
			return err
		}
		for _, catID := range *upd.CategoryIDs {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO recipe_categories (recipe_id, category_id) VALUES (?,?)", id, catID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes a recipe on behalf of requesterID. Dependent comment,
// favorite and association rows are cleaned up by the cascade constraints.
func (r *RecipeRepo) Delete(ctx context.Context, id, requesterID uint64) error {
	var ownerID uint64
	err := r.DB.QueryRowContext(ctx, "SELECT user_id FROM recipes WHERE id = ?", id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := assertOwner(ownerID, requesterID); err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	return err
}

// scanRecipes runs a query returning plain recipe rows (no aggregation).
func (r *RecipeRepo) scanRecipes(ctx context.Context, q string, args ...any) ([]*Recipe, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
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

func splitNames(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
