package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func newCategoryRepo(t *testing.T) (*CategoryRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCategoryRepo(db), mock
}

func TestCategoryCreate(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (name) VALUES (?)")).
		WithArgs("Vegan").
		WillReturnResult(sqlmock.NewResult(6, 1))

	id, err := repo.Create(context.Background(), "Vegan")
	require.NoError(t, err)
	require.Equal(t, uint64(6), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectExec("INSERT INTO categories").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Vegan' for key 'categories.name'"})

	_, err := repo.Create(context.Background(), "Vegan")
	require.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssign(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO recipe_categories (recipe_id, category_id) VALUES (?,?)")).
		WithArgs(uint64(5), uint64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Assign(context.Background(), 5, 6, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignRecipeNotFound(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	err := repo.Assign(context.Background(), 5, 6, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignForbiddenForNonOwner(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))

	err := repo.Assign(context.Background(), 5, 6, 1)
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryAssignDuplicate(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM recipes WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))
	mock.ExpectExec("INSERT INTO recipe_categories").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '5-6' for key 'recipe_categories.PRIMARY'"})

	err := repo.Assign(context.Background(), 5, 6, 1)
	require.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}
