package account

const (
	InsertAccount = `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`
	SelectAccountByEmail = `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
	`
	SelectAccountByID = `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE id = $1
	`
)
