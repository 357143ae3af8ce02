package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/pkg/apperrors"
	"github.com/pucknotes/server/internal/pkg/dberrors"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) selectAccount() squirrel.SelectBuilder {
	return psql.Select("id", "email", "username", "password_hash", "role", "created_at").From("accounts")
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		return nil, notFound(err, "account")
	}
	return &a, nil
}

// GetByID retrieves an account by id
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	sql, args, err := r.selectAccount().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, buildErr("get account", err)
	}
	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

// GetByEmail retrieves an account by its login email, case-insensitively
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	sql, args, err := r.selectAccount().Where("LOWER(email) = LOWER(?)", email).ToSql()
	if err != nil {
		return nil, buildErr("get account by email", err)
	}
	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

// Exists reports whether an account with id exists
func (r *AccountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return exists, nil
}

// Create inserts an account and fills in its id
func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	sql, args, err := psql.Insert("accounts").
		Columns("email", "username", "password_hash", "role").
		Values(a.Email, a.Username, a.PasswordHash, a.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return buildErr("create account", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return apperrors.NewConflictError("an account with this email already exists")
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
