package ports

import (
	"context"

	"eduxchange/internal/domain/profile"
)

type ProfileService interface {
	FindSummary(ctx context.Context, id profile.ID) (*profile.Summary, error)
}
