package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"eduxchange/internal/domain/account"
	"eduxchange/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) account.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateAccount(ctx context.Context, email, passwordHash string) (*account.Account, error) {
	a := new(Account)
	err := r.db.QueryRow(ctx, InsertAccount, email, passwordHash).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(a), nil
}

func (r *Repository) FetchAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.fetchOne(ctx, SelectAccountByEmail, email)
}

func (r *Repository) FetchAccountByID(ctx context.Context, id account.ID) (*account.Account, error) {
	return r.fetchOne(ctx, SelectAccountByID, id)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*account.Account, error) {
	a := new(Account)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(a), nil
}
