package profile

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID
	FullName    *string
	University  *string
	Department  *string
	YearOfStudy *string
	Bio         *string
	AvatarURL   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
