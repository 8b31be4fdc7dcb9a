package users

const (
	userColumns = `id, name, email, role, oauth_provider, oauth_id,
		oauth_access_token, oauth_refresh_token, oauth_token_expires_at,
		created_at, updated_at`

	queryFindByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryList = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	queryCreate = `
		INSERT INTO users (name, email, role, oauth_provider, oauth_id,
			oauth_access_token, oauth_refresh_token, oauth_token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns + `
	`

	queryDelete = `
		DELETE FROM users
		WHERE id = $1
	`
)
