package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountCols = []string{"id", "email", "password_hash", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_CreateAccount(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
		wantAny bool
	}{
		{
			name: "created",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(InsertAccount).
					WithArgs("ann@uni.test", "hash").
					WillReturnRows(pgxmock.NewRows(accountCols).AddRow(id, "ann@uni.test", "hash", now))
			},
		},
		{
			name: "duplicate email",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(InsertAccount).
					WithArgs("ann@uni.test", "hash").
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name: "driver error",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(InsertAccount).
					WithArgs("ann@uni.test", "hash").
					WillReturnError(errors.New("conn reset"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			a, err := NewRepository(mock).CreateAccount(context.Background(), "ann@uni.test", "hash")
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
			case tt.wantAny:
				require.Error(t, err)
				assert.Nil(t, a)
			default:
				require.NoError(t, err)
				assert.Equal(t, id, a.ID)
				assert.Equal(t, "ann@uni.test", a.Email)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FetchAccountByEmail_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(SelectAccountByEmail).
		WithArgs("nobody@uni.test").
		WillReturnError(pgx.ErrNoRows)

	a, err := NewRepository(mock).FetchAccountByEmail(context.Background(), "nobody@uni.test")
	require.NoError(t, err)
	assert.Nil(t, a)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchAccountByID(t *testing.T) {
	id := uuid.New()
	mock := newMock(t)
	mock.ExpectQuery(SelectAccountByID).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(accountCols).AddRow(id, "ann@uni.test", "hash", time.Now()))

	a, err := NewRepository(mock).FetchAccountByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "hash", a.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}
