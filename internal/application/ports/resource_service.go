package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"eduxchange/internal/domain/resource"
)

type ResourceService interface {
	// CreateResource stores file (may be nil) and inserts the record.
	CreateResource(ctx context.Context, userID uuid.UUID, in resource.Resource, file *multipart.FileHeader) (*resource.Resource, error)
	// UpdateResource applies edit to a resource owned by userID.
	UpdateResource(ctx context.Context, userID uuid.UUID, id resource.ID, edit resource.Edit) (*resource.Resource, error)
	FindUserResources(ctx context.Context, userID uuid.UUID, typ *resource.Type) (resource.Resources, error)
	ViewResource(ctx context.Context, id resource.ID, viewer uuid.UUID) (*resource.Resource, error)
	DownloadResource(ctx context.Context, id resource.ID, viewer uuid.UUID) (string, error)
	DeleteResource(ctx context.Context, userID uuid.UUID, id resource.ID) error
}
