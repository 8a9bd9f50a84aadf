package services

import (
	"context"

	"eduxchange/internal/domain/account"
	"eduxchange/internal/domain/profile"
	"eduxchange/internal/domain/resource"
)

type ProfileService struct {
	accountRepository  account.Repository
	profileRepository  profile.Repository
	resourceRepository resource.Repository
}

func NewProfileService(
	accountRepository account.Repository,
	profileRepository profile.Repository,
	resourceRepository resource.Repository,
) *ProfileService {
	return &ProfileService{
		accountRepository:  accountRepository,
		profileRepository:  profileRepository,
		resourceRepository: resourceRepository,
	}
}

// FindSummary returns nil when the account does not exist.
func (ps *ProfileService) FindSummary(ctx context.Context, id profile.ID) (*profile.Summary, error) {
	a, err := ps.accountRepository.FetchAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	p, err := ps.profileRepository.FetchProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &profile.Profile{ID: id, CreatedAt: a.CreatedAt, UpdatedAt: a.CreatedAt}
	}

	n, err := ps.resourceRepository.CountUserResources(ctx, id)
	if err != nil {
		return nil, err
	}

	return &profile.Summary{Profile: *p, Email: a.Email, ResourceCount: n}, nil
}
