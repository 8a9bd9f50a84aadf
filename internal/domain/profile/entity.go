package profile

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID      = uuid.UUID
	Profile struct {
		ID          ID
		FullName    *string
		University  *string
		Department  *string
		YearOfStudy *string
		Bio         *string
		AvatarURL   *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

// Summary is what the current user sees about themselves.
type Summary struct {
	Profile       Profile
	Email         string
	ResourceCount int64
}
