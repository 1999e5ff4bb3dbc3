package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/database/postgres"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=user.go -destination=mocks/mock_user.go -package=mocks

const (
	usersTable        = "users"
	userAccountsTable = "user_accounts"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	GetUserLinkedAccounts(ctx context.Context, userID int) ([]string, error)
}

type userRepository struct {
	conn postgres.Conn
}

func NewUserRepository(conn postgres.Conn) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// GetUserByEmail returns nil without error when no user has the email.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	usersSQL, args, err := squirrel.
		Select("id", "name", "email", "password_hash", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, usersSQL, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	linkedAccounts, err := r.GetUserLinkedAccounts(ctx, user.ID)
	if err != nil {
		logrus.Warnf("failed to load linked accounts of user %d: %v", user.ID, err)
	} else {
		user.AccountIDs = linkedAccounts
	}

	return &user, nil
}

func (r *userRepository) GetUserLinkedAccounts(ctx context.Context, userID int) ([]string, error) {
	query, args, err := squirrel.
		Select("account_id").
		From(userAccountsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked accounts: %w", err)
	}
	defer rows.Close()

	linkedAccounts := make([]string, 0)
	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			return nil, fmt.Errorf("failed to scan linked account: %w", err)
		}
		linkedAccounts = append(linkedAccounts, accountID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate linked accounts: %w", err)
	}

	return linkedAccounts, nil
}
