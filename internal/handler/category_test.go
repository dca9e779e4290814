package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/mhartwig22/recipe-book/internal/repository"
)

func newCategoryHandler(t *testing.T) (*CategoryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCategoryHandler(repository.NewCategoryRepo(db)), mock
}

func TestCategoryListAll(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Dessert").
			AddRow(2, "Vegan"))

	c, rec := jsonCtx(http.MethodGet, "/categories", "")
	require.NoError(t, h.ListAll(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cats []repository.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 2)
	require.Equal(t, "Dessert", cats[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreateRequiresName(t *testing.T) {
	h, _ := newCategoryHandler(t)

	c, rec := authedCtx(http.MethodPost, "/categories", `{"name":"  "}`, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryCreateSuccess(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (name) VALUES (?)")).
		WithArgs("Dessert").
		WillReturnResult(sqlmock.NewResult(4, 1))

	c, rec := authedCtx(http.MethodPost, "/categories", `{"name":"Dessert"}`, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, float64(4), resp["categoryId"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (name) VALUES (?)")).
		WithArgs("Dessert").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})

	c, rec := authedCtx(http.MethodPost, "/categories", `{"name":"Dessert"}`, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignSuccess(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_categories (recipe_id, category_id) VALUES (?,?)")).
		WithArgs(uint64(5), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := authedCtx(http.MethodPost, "/categories/assign/5", `{"categoryId":3}`, 2)
	c.SetPath("/categories/assign/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Assign(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignRecipeNotFound(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	c, rec := authedCtx(http.MethodPost, "/categories/assign/99", `{"categoryId":3}`, 2)
	c.SetPath("/categories/assign/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("99")

	require.NoError(t, h.Assign(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignForbiddenForNonOwner(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

	c, rec := authedCtx(http.MethodPost, "/categories/assign/5", `{"categoryId":3}`, 2)
	c.SetPath("/categories/assign/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Assign(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignAlreadyAssigned(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_categories (recipe_id, category_id) VALUES (?,?)")).
		WithArgs(uint64(5), uint64(3)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})

	c, rec := authedCtx(http.MethodPost, "/categories/assign/5", `{"categoryId":3}`, 2)
	c.SetPath("/categories/assign/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Assign(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignMissingCategoryID(t *testing.T) {
	h, _ := newCategoryHandler(t)

	c, rec := authedCtx(http.MethodPost, "/categories/assign/5", `{}`, 2)
	c.SetPath("/categories/assign/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Assign(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
