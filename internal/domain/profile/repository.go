package profile

import (
	"context"
)

type Repository interface {
	FetchProfileByID(ctx context.Context, id ID) (*Profile, error)
	UpsertProfile(ctx context.Context, req Profile) (*Profile, error)
}
