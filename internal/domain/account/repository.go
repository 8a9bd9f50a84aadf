package account

import (
	"context"
)

type Repository interface {
	CreateAccount(ctx context.Context, email, passwordHash string) (*Account, error)
	FetchAccountByEmail(ctx context.Context, email string) (*Account, error)
	FetchAccountByID(ctx context.Context, id ID) (*Account, error)
}
