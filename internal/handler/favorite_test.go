package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/mhartwig22/recipe-book/internal/repository"
)

func newFavoriteHandler(t *testing.T) (*FavoriteHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFavoriteHandler(repository.NewFavoriteRepo(db)), mock
}

func TestFavoriteAddSuccess(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites (user_id, recipe_id) VALUES (?,?)")).
		WithArgs(uint64(1), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := authedCtx(http.MethodPost, "/favorites/5", "", 1)
	c.SetPath("/favorites/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAddTwiceConflicts(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites (user_id, recipe_id) VALUES (?,?)")).
		WithArgs(uint64(1), uint64(5)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})

	c, rec := authedCtx(http.MethodPost, "/favorites/5", "", 1)
	c.SetPath("/favorites/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRemoveIsIdempotent(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	// Nothing deleted, still a success.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?")).
		WithArgs(uint64(1), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := authedCtx(http.MethodDelete, "/favorites/5", "", 1)
	c.SetPath("/favorites/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("5")

	require.NoError(t, h.Remove(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteListMine(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectQuery("JOIN favorites f").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "ingredients", "instructions", "image_path", "user_id", "created_at",
		}).AddRow(5, "Soup", "water", "boil", nil, 2, time.Now()))

	c, rec := authedCtx(http.MethodGet, "/favorites/me", "", 1)
	require.NoError(t, h.ListMine(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []repository.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Soup", got[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteInvalidRecipeID(t *testing.T) {
	h, _ := newFavoriteHandler(t)

	c, rec := authedCtx(http.MethodPost, "/favorites/abc", "", 1)
	c.SetPath("/favorites/:recipeId")
	c.SetParamNames("recipeId")
	c.SetParamValues("abc")

	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
