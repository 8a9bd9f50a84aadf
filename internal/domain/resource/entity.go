package resource

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrFileRequired = errors.New("file is required for this resource type")
	ErrLinkRequired = errors.New("external link is required for this resource type")
)

type (
	ID       = uuid.UUID
	Resource struct {
		ID          ID
		UserID      uuid.UUID
		Title       string
		Description *string
		Type        Type
		Subject     *string
		CourseCode  *string

		FileURL      *string
		FileName     *string
		FileSize     *int64
		MimeType     *string
		ExternalLink *string

		Tags     Tags
		IsPublic bool

		DownloadCount int64
		ViewCount     int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Resources []*Resource

	// Edit holds the user editable fields. A nil IsPublic keeps the stored
	// visibility.
	Edit struct {
		Title        string
		Description  *string
		Subject      *string
		CourseCode   *string
		ExternalLink *string
		IsPublic     *bool
		Tags         Tags
	}
)

// VisibleTo reports whether viewer may open the resource.
// uuid.Nil stands for an anonymous viewer.
func (r *Resource) VisibleTo(viewer uuid.UUID) bool {
	return r.IsPublic || (viewer != uuid.Nil && viewer == r.UserID)
}

// HasFile reports whether an uploaded blob backs the resource.
func (r *Resource) HasFile() bool {
	return r.FileURL != nil && *r.FileURL != ""
}

// Check validates the type specific attachment rules. hasFile tells
// whether an upload accompanies the record.
func (r *Resource) Check(hasFile bool) error {
	if r.Type.NeedsLink() && (r.ExternalLink == nil || *r.ExternalLink == "") {
		return ErrLinkRequired
	}
	if r.Type.NeedsFile() && !hasFile {
		return ErrFileRequired
	}
	return nil
}

// Apply returns r with the edit laid over it. Type and attachment stay as
// stored.
func (e Edit) Apply(r Resource) Resource {
	r.Title = e.Title
	r.Description = e.Description
	r.Subject = e.Subject
	r.CourseCode = e.CourseCode
	r.ExternalLink = e.ExternalLink
	r.Tags = NormalizeTags(e.Tags)
	if e.IsPublic != nil {
		r.IsPublic = *e.IsPublic
	}
	return r
}
