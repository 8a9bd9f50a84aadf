package profile

import (
	"time"

	"github.com/google/uuid"
)

type Me struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      *string   `json:"full_name"`
	University    *string   `json:"university"`
	Department    *string   `json:"department"`
	YearOfStudy   *string     `json:"year_of_study"`
	Bio           *string   `json:"bio"`
	AvatarURL     *string   `json:"avatar_url"`
	ResourceCount int64     `json:"resource_count"`
	CreatedAt     time.Time `json:"created_at"`
}
