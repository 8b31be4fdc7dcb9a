package users

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and local tooling.
// It enforces the same unique-email constraint as the Postgres repository.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*User

	// counts mutating statements, letting tests assert write idempotence
	Writes int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		users:  make(map[int64]*User),
	}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return cloneUser(user), nil
}

func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]User, 0, len(s.users))

	for id := int64(1); id < s.nextID; id++ {
		if user, ok := s.users[id]; ok {
			result = append(result, *cloneUser(user))
		}
	}

	return result, nil
}

func (s *MemoryStore) Create(_ context.Context, params CreateParams) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == params.Email {
			return nil, ErrDuplicateEmail
		}
	}

	role := params.Role
	if !role.Valid() {
		role = RoleUser
	}

	now := time.Now()
	user := &User{
		ID:        s.nextID,
		Name:      params.Name,
		Email:     params.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if link := params.OAuth; link != nil {
		user.OAuthProvider = &link.Provider
		user.OAuthID = &link.Subject
		expiresAt := link.ExpiresAt
		user.OAuthTokenExpiresAt = &expiresAt

		if link.AccessToken != "" {
			token := link.AccessToken
			user.OAuthAccessToken = &token
		}

		if link.RefreshToken != "" {
			token := link.RefreshToken
			user.OAuthRefreshToken = &token
		}
	}

	s.nextID++
	s.Writes++
	s.users[user.ID] = user

	return cloneUser(user), nil
}

func (s *MemoryStore) UpdateFields(_ context.Context, id int64, updates Updates) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if updates.IsEmpty() {
		return 0, nil
	}

	user, ok := s.users[id]
	if !ok {
		return 0, nil
	}

	if updates.Email != nil {
		for _, existing := range s.users {
			if existing.ID != id && existing.Email == *updates.Email {
				return 0, ErrDuplicateEmail
			}
		}

		user.Email = *updates.Email
	}

	if updates.Name != nil {
		user.Name = *updates.Name
	}

	if updates.Role != nil {
		user.Role = *updates.Role
	}

	if updates.OAuthProvider != nil {
		user.OAuthProvider = clonePtr(updates.OAuthProvider)
	}

	if updates.OAuthID != nil {
		user.OAuthID = clonePtr(updates.OAuthID)
	}

	if updates.OAuthAccessToken != nil {
		user.OAuthAccessToken = clonePtr(updates.OAuthAccessToken)
	}

	if updates.OAuthRefreshToken != nil {
		user.OAuthRefreshToken = clonePtr(updates.OAuthRefreshToken)
	}

	if updates.OAuthTokenExpiresAt != nil {
		expiresAt := *updates.OAuthTokenExpiresAt
		user.OAuthTokenExpiresAt = &expiresAt
	}

	user.UpdatedAt = time.Now()
	s.Writes++

	return 1, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return 0, nil
	}

	delete(s.users, id)
	s.Writes++

	return 1, nil
}

func cloneUser(user *User) *User {
	clone := *user
	clone.OAuthProvider = clonePtr(user.OAuthProvider)
	clone.OAuthID = clonePtr(user.OAuthID)
	clone.OAuthAccessToken = clonePtr(user.OAuthAccessToken)
	clone.OAuthRefreshToken = clonePtr(user.OAuthRefreshToken)

	if user.OAuthTokenExpiresAt != nil {
		expiresAt := *user.OAuthTokenExpiresAt
		clone.OAuthTokenExpiresAt = &expiresAt
	}

	return &clone
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}

	value := *p
	return &value
}
