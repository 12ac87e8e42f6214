package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mctasu/vending-machine-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type usersRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewUsersRepo(db *sqlx.DB) *usersRepo {
	return &usersRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *usersRepo) SaveUser(ctx context.Context, u entities.User) error {
	query, args := r.qb.Insert("users").
		Columns("user_id", "name", "email", "password_hash", "role", "active", "created_at").
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Active, u.CreatedAt).
		MustSql()

	_, err := r.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return entities.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	query, args := r.qb.Select("user_id", "name", "email", "password_hash", "role", "active", "created_at").
		From("users").
		Where(sq.Eq{"email": email, "active": true}).
		MustSql()

	var user User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return UserToEntity(user), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, userID string) (entities.User, error) {
	query, args := r.qb.Select("user_id", "name", "email", "password_hash", "role", "active", "created_at").
		From("users").
		Where(sq.Eq{"user_id": userID, "active": true}).
		MustSql()

	var user User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return UserToEntity(user), nil
}
