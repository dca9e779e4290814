package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mhartwig22/recipe-book/internal/utils"
)

// User mirrors the 'users' table. The password hash never leaves this layer.
type User struct {
	ID           uint64
	Email        string
	Username     sql.NullString
	PasswordHash string
	CreatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user, returning its ID.
// Username is optional and stored as NULL when empty.
func (r *UserRepo) Create(ctx context.Context, email, password, username string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var uname any
	if u := strings.TrimSpace(username); u != "" {
		uname = u
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, username) VALUES (?,?,?)",
		email, hash, uname)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,username,password_hash,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,username,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
