package resource

import (
	"time"

	"github.com/google/uuid"
)

type (
	Resource struct {
		ID           uuid.UUID
		UserID       uuid.UUID
		Title        string
		Description  *string
		ResourceType string
		Subject      *string
		CourseCode   *string

		FileURL      *string
		FileName     *string
		FileSize     *int64
		MimeType     *string
		ExternalLink *string

		Tags     []string
		IsPublic bool

		DownloadCount int64
		ViewCount     int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Resources []*Resource
)
