package resource

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateResource(ctx context.Context, req *Resource) (*Resource, error)
	FetchResourceByID(ctx context.Context, id ID) (*Resource, error)
	FetchUserResources(ctx context.Context, userID uuid.UUID, typ *Type) (Resources, error)
	UpdateResource(ctx context.Context, req *Resource) (*Resource, error)
	DeleteResource(ctx context.Context, id ID, userID uuid.UUID) (*Resource, error)
	// IncrementViewCount bumps the counter only when viewer may see the row.
	IncrementViewCount(ctx context.Context, id ID, viewer uuid.UUID) (*Resource, error)
	IncrementDownloadCount(ctx context.Context, id ID, viewer uuid.UUID) (*Resource, error)
	CountUserResources(ctx context.Context, userID uuid.UUID) (int64, error)
}
