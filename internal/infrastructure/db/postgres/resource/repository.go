package resource

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"eduxchange/internal/domain/resource"
	"eduxchange/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) resource.Repository {
	return &Repository{db: db}
}

func scan(row pgx.Row) (*Resource, error) {
	r := new(Resource)
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.Description,
		&r.ResourceType,
		&r.Subject,
		&r.CourseCode,

		&r.FileURL,
		&r.FileName,
		&r.FileSize,
		&r.MimeType,
		&r.ExternalLink,

		&r.Tags,
		&r.IsPublic,
		&r.DownloadCount,
		&r.ViewCount,

		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// fetchOne maps pgx.ErrNoRows to (nil, nil).
func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*resource.Resource, error) {
	m, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) CreateResource(ctx context.Context, req *resource.Resource) (*resource.Resource, error) {
	m, err := scan(r.db.QueryRow(
		ctx,
		InsertResource,
		req.UserID, req.Title, req.Description, string(req.Type), req.Subject, req.CourseCode,
		req.FileURL, req.FileName, req.FileSize, req.MimeType, req.ExternalLink,
		tagsToDB(req.Tags), req.IsPublic,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(m), nil
}

func (r *Repository) FetchResourceByID(ctx context.Context, id resource.ID) (*resource.Resource, error) {
	return r.fetchOne(ctx, SelectResourceByID, id)
}

func (r *Repository) FetchUserResources(
	ctx context.Context,
	userID uuid.UUID,
	typ *resource.Type,
) (resource.Resources, error) {
	var typeArg *string
	if typ != nil {
		s := string(*typ)
		typeArg = &s
	}

	rows, err := r.db.Query(ctx, SelectUserResources, userID, typeArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rs Resources
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		rs = append(rs, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(rs), nil
}

func (r *Repository) UpdateResource(ctx context.Context, req *resource.Resource) (*resource.Resource, error) {
	return r.fetchOne(ctx, UpdateResourceByID,
		req.ID, req.UserID,
		req.Title, req.Description, req.Subject, req.CourseCode, req.ExternalLink, req.IsPublic,
		tagsToDB(req.Tags),
	)
}

func (r *Repository) DeleteResource(ctx context.Context, id resource.ID, userID uuid.UUID) (*resource.Resource, error) {
	return r.fetchOne(ctx, DeleteResourceByID, id, userID)
}

func (r *Repository) IncrementViewCount(ctx context.Context, id resource.ID, viewer uuid.UUID) (*resource.Resource, error) {
	return r.fetchOne(ctx, IncrementViewCount, id, viewer)
}

func (r *Repository) IncrementDownloadCount(ctx context.Context, id resource.ID, viewer uuid.UUID) (*resource.Resource, error) {
	return r.fetchOne(ctx, IncrementDownloadCount, id, viewer)
}

func (r *Repository) CountUserResources(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, CountUserResources, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
