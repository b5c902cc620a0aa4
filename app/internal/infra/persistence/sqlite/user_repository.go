package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domuser "example.com/ecomshop/app/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO users (email, display_name, password_hash)
        VALUES (?, ?, ?)
    `, u.Email, u.DisplayName, u.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	u.ID, _ = res.LastInsertId()
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	return r.get(ctx, `WHERE email = ?`, email)
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, email, display_name, password_hash FROM users `+where, arg)

	var u domuser.User
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
