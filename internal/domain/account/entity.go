package account

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID      = uuid.UUID
	Account struct {
		ID           ID
		Email        string
		PasswordHash string

		CreatedAt time.Time
	}
)
