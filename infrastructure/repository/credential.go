package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/database/postgres"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
)

//go:generate mockgen -source=credential.go -destination=mocks/mock_credential.go -package=mocks

const accountsTable = "allegro_accounts"

type CredentialRepository interface {
	GetCredential(ctx context.Context, accountID string) (*domain.Credential, error)
	UpdateTokens(ctx context.Context, credential *domain.Credential) error
	ListExpiring(ctx context.Context, before time.Time) ([]*domain.Credential, error)
}

type credentialRepository struct {
	conn postgres.Conn
}

func NewCredentialRepository(conn postgres.Conn) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

// GetCredential returns nil without error when the account does not exist. An
// account that was never authorized has empty tokens.
func (r *credentialRepository) GetCredential(ctx context.Context, accountID string) (*domain.Credential, error) {
	credentialSQL, args, err := squirrel.
		Select("id", "access_token", "refresh_token", "token_expires_at", "updated_at").
		From(accountsTable).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	credential, err := deserializeCredential(r.conn.QueryRowContext(ctx, credentialSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return credential, nil
}

func deserializeCredential(row scanner) (*domain.Credential, error) {
	var (
		credential   domain.Credential
		accessToken  sql.NullString
		refreshToken sql.NullString
		expiresAt    sql.NullTime
	)

	if err := row.Scan(
		&credential.AccountID,
		&accessToken,
		&refreshToken,
		&expiresAt,
		&credential.UpdatedAt,
	); err != nil {
		return nil, err
	}

	credential.AccessToken = accessToken.String
	credential.RefreshToken = refreshToken.String
	credential.ExpiresAt = expiresAt.Time

	return &credential, nil
}

func (r *credentialRepository) UpdateTokens(ctx context.Context, credential *domain.Credential) error {
	updateSQL, args, err := squirrel.
		Update(accountsTable).
		Set("access_token", credential.AccessToken).
		Set("refresh_token", credential.RefreshToken).
		Set("token_expires_at", credential.ExpiresAt).
		Set("updated_at", credential.UpdatedAt).
		Where(squirrel.Eq{"id": credential.AccountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		return wrapPqError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("account not found")
	}

	return nil
}

// ListExpiring returns every authorized account whose token expires before
// the given instant or has no recorded expiry.
func (r *credentialRepository) ListExpiring(ctx context.Context, before time.Time) ([]*domain.Credential, error) {
	listSQL, args, err := listExpiringQuery(before)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	credentials := make([]*domain.Credential, 0)
	for rows.Next() {
		credential, err := deserializeCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize credential: %w", err)
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return credentials, nil
}

func listExpiringQuery(before time.Time) (string, []any, error) {
	return squirrel.
		Select("id", "access_token", "refresh_token", "token_expires_at", "updated_at").
		From(accountsTable).
		Where(squirrel.NotEq{"refresh_token": nil}).
		Where(squirrel.NotEq{"refresh_token": ""}).
		Where(squirrel.Or{
			squirrel.Eq{"token_expires_at": nil},
			squirrel.Lt{"token_expires_at": before},
		}).
		OrderBy("token_expires_at ASC NULLS FIRST").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
