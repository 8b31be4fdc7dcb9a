package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgres class 23 code for unique constraint violations
const uniqueViolationCode = "23505"

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// compile-time check that the repository satisfies the store boundary
var _ Store = (*Repository)(nil)

// finds a user by email, the durable identity key
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryFindByEmail, email))
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryFindByID, id))
}

// lists all users ordered by id
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, queryList)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	defer rows.Close()

	result := []User{}

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}

		result = append(result, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return result, nil
}

// inserts a new user record
func (r *Repository) Create(ctx context.Context, params CreateParams) (*User, error) {
	role := params.Role
	if !role.Valid() {
		role = RoleUser
	}

	var provider, subject, accessToken, refreshToken any
	var expiresAt any

	if link := params.OAuth; link != nil {
		provider = link.Provider
		subject = link.Subject
		expiresAt = link.ExpiresAt

		if link.AccessToken != "" {
			accessToken = link.AccessToken
		}

		if link.RefreshToken != "" {
			refreshToken = link.RefreshToken
		}
	}

	user, err := r.scanOne(r.db.QueryRow(ctx, queryCreate,
		params.Name, params.Email, role,
		provider, subject, accessToken, refreshToken, expiresAt,
	))

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateEmail
		}

		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// overwrites only the fields set on updates, in a single statement
func (r *Repository) UpdateFields(ctx context.Context, id int64, updates Updates) (int64, error) {
	assignments := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if updates.Name != nil {
		add("name", *updates.Name)
	}

	if updates.Email != nil {
		add("email", *updates.Email)
	}

	if updates.Role != nil {
		add("role", *updates.Role)
	}

	if updates.OAuthProvider != nil {
		add("oauth_provider", *updates.OAuthProvider)
	}

	if updates.OAuthID != nil {
		add("oauth_id", *updates.OAuthID)
	}

	if updates.OAuthAccessToken != nil {
		add("oauth_access_token", *updates.OAuthAccessToken)
	}

	if updates.OAuthRefreshToken != nil {
		add("oauth_refresh_token", *updates.OAuthRefreshToken)
	}

	if updates.OAuthTokenExpiresAt != nil {
		add("oauth_token_expires_at", *updates.OAuthTokenExpiresAt)
	}

	if len(assignments) == 0 {
		return 0, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(assignments, ", "), len(args),
	)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, ErrDuplicateEmail
		}

		return 0, fmt.Errorf("update user %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}

// removes a user record
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		return 0, fmt.Errorf("delete user %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}

// row abstracts pgx.Row and pgx.Rows for scanning
type row interface {
	Scan(dest ...any) error
}

func (r *Repository) scanOne(src row) (*User, error) {
	user, err := scanUser(src)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return user, nil
}

func scanUser(src row) (*User, error) {
	var user User

	err := src.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.OAuthProvider,
		&user.OAuthID,
		&user.OAuthAccessToken,
		&user.OAuthRefreshToken,
		&user.OAuthTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}
