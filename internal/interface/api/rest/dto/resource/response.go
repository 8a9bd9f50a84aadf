package resource

import (
	"time"

	"github.com/google/uuid"
)

type (
	Display struct {
		Label string `json:"label"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	Resource struct {
		ID            uuid.UUID `json:"id"`
		UserID        uuid.UUID `json:"user_id"`
		Title         string    `json:"title"`
		Description   *string   `json:"description"`
		ResourceType  string    `json:"resource_type"`
		Subject       *string   `json:"subject"`
		CourseCode    *string   `json:"course_code"`
		FileURL       *string   `json:"file_url"`
		FileName      *string   `json:"file_name"`
		FileSize      *int64    `json:"file_size"`
		MimeType      *string   `json:"mime_type"`
		ExternalLink  *string   `json:"external_link"`
		Tags          []string  `json:"tags"`
		IsPublic      bool      `json:"is_public"`
		DownloadCount int64     `json:"download_count"`
		ViewCount     int64     `json:"view_count"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
		Display       Display   `json:"display"`
	}
	Resources    []Resource
	ResponseData struct {
		Data Resources `json:"data"`
	}
)
