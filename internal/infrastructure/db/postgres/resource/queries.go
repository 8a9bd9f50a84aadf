package resource

const columns = `
		id, user_id, title, description, resource_type, subject, course_code,
		file_url, file_name, file_size, mime_type, external_link,
		tags, is_public, download_count, view_count, created_at, updated_at
	`

const (
	InsertResource = `
		INSERT INTO resources (
			user_id, title, description, resource_type, subject, course_code,
			file_url, file_name, file_size, mime_type, external_link, tags, is_public
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING` + columns
	SelectResourceByID = `
		SELECT` + columns + `
		FROM resources
		WHERE id = $1
	`
	SelectUserResources = `
		SELECT` + columns + `
		FROM resources
		WHERE user_id = $1 AND ($2::text IS NULL OR resource_type = $2::text)
		ORDER BY created_at DESC
	`
	UpdateResourceByID = `
		UPDATE resources
		SET title = $3,
		    description = $4,
		    subject = $5,
		    course_code = $6,
		    external_link = $7,
		    is_public = $8,
		    tags = $9,
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING` + columns
	DeleteResourceByID = `
		DELETE FROM resources
		WHERE id = $1 AND user_id = $2
		RETURNING` + columns
	IncrementViewCount = `
		UPDATE resources
		SET view_count = view_count + 1
		WHERE id = $1 AND (is_public OR user_id = $2)
		RETURNING` + columns
	IncrementDownloadCount = `
		UPDATE resources
		SET download_count = download_count + 1
		WHERE id = $1 AND (is_public OR user_id = $2)
		RETURNING` + columns
	CountUserResources = `SELECT count(*) FROM resources WHERE user_id = $1`
)
