package postgres

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id            uuid PRIMARY KEY REFERENCES accounts (id) ON DELETE CASCADE,
		full_name     text,
		university    text,
		department    text,
		year_of_study text,
		bio           text,
		avatar_url    text,
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	)`,
	// year_of_study holds labels such as "2nd Year" or "PhD"; older databases had integer
	`ALTER TABLE profiles ALTER COLUMN year_of_study TYPE text USING year_of_study::text`,
	`CREATE TABLE IF NOT EXISTS resources (
		id             uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id        uuid NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		title          text NOT NULL,
		description    text,
		resource_type  text NOT NULL CHECK (resource_type IN ('pdf', 'notes', 'video', 'image', 'link')),
		subject        text,
		course_code    text,
		file_url       text,
		file_name      text,
		file_size      bigint,
		mime_type      text,
		external_link  text,
		tags           text[],
		is_public      boolean NOT NULL DEFAULT true,
		download_count bigint NOT NULL DEFAULT 0,
		view_count     bigint NOT NULL DEFAULT 0,
		created_at     timestamptz NOT NULL DEFAULT now(),
		updated_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS resources_user_created_idx ON resources (user_id, created_at DESC)`,
}
