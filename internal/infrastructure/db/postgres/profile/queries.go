package profile

const (
	SelectProfileByID = `
		SELECT id, full_name, university, department, year_of_study, bio, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	UpsertProfile = `
		INSERT INTO profiles (id, full_name, university, department, year_of_study, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    university = EXCLUDED.university,
		    department = EXCLUDED.department,
		    year_of_study = EXCLUDED.year_of_study,
		    bio = EXCLUDED.bio,
		    avatar_url = EXCLUDED.avatar_url,
		    updated_at = now()
		RETURNING id, full_name, university, department, year_of_study, bio, avatar_url, created_at, updated_at
	`
)
