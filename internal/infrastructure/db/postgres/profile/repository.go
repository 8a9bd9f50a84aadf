package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"eduxchange/internal/domain/profile"
	"eduxchange/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) profile.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchProfileByID(ctx context.Context, id profile.ID) (*profile.Profile, error) {
	p := new(Profile)
	err := r.db.QueryRow(ctx, SelectProfileByID, id).Scan(
		&p.ID,
		&p.FullName,
		&p.University,
		&p.Department,
		&p.YearOfStudy,
		&p.Bio,
		&p.AvatarURL,

		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) UpsertProfile(ctx context.Context, req profile.Profile) (*profile.Profile, error) {
	p := new(Profile)
	err := r.db.QueryRow(ctx, UpsertProfile,
		req.ID, req.FullName, req.University, req.Department, req.YearOfStudy, req.Bio, req.AvatarURL,
	).Scan(
		&p.ID,
		&p.FullName,
		&p.University,
		&p.Department,
		&p.YearOfStudy,
		&p.Bio,
		&p.AvatarURL,

		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(p), nil
}
