package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"foundation/internal/model"
)

// memStore is an in-memory SessionStore for tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*Session)}
}

func (s *memStore) Save(_ context.Context, session *Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memStore) Find(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memStore) contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

func testUser() *model.User {
	return &model.User{
		ID:    "user-1",
		Email: "jane@example.org",
		Name:  "Jane",
		Role:  model.RoleUser,
	}
}

func TestSessionIntegrity(t *testing.T) {
	base := Session{
		Authenticated: true,
		UserID:        "user-1",
		Email:         "jane@example.org",
		Name:          "Jane",
		Role:          model.RoleUser,
	}
	assert.True(t, base.IntegrityOK())

	tests := []struct {
		name   string
		mutate func(*Session)
	}{
		{"missing id", func(s *Session) { s.UserID = "" }},
		{"missing email", func(s *Session) { s.Email = "" }},
		{"missing name", func(s *Session) { s.Name = "" }},
		{"invalid role", func(s *Session) { s.Role = "owner" }},
		{"not authenticated", func(s *Session) { s.Authenticated = false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := base
			tt.mutate(&session)
			assert.False(t, session.IntegrityOK())
		})
	}

	var nilSession *Session
	assert.False(t, nilSession.IntegrityOK())
}

func TestManagerIssueAndLoad(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store, "test-secret", 24*time.Hour, false)
	ctx := context.Background()

	session, cookie, err := manager.Issue(ctx, testUser())
	assert.NoError(t, err)
	assert.True(t, store.contains(session.ID), "session persisted before cookie is handed out")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	loaded, err := manager.Load(ctx, cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, model.RoleUser, loaded.Role)
	assert.True(t, loaded.IntegrityOK())
}

func TestManagerRejectsTamperedCookie(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store, "test-secret", 24*time.Hour, false)
	other := NewManager(store, "other-secret", 24*time.Hour, false)
	ctx := context.Background()

	_, cookie, err := manager.Issue(ctx, testUser())
	assert.NoError(t, err)

	loaded, err := other.Load(ctx, cookie.Value)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	loaded, err = manager.Load(ctx, "garbage")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestManagerAbsoluteExpiry(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store, "test-secret", time.Hour, false)
	current := time.Now()
	manager.now = func() time.Time { return current }
	ctx := context.Background()

	session, cookie, err := manager.Issue(ctx, testUser())
	assert.NoError(t, err)

	current = current.Add(time.Hour + time.Minute)
	loaded, err := manager.Load(ctx, cookie.Value)
	assert.NoError(t, err)
	assert.Nil(t, loaded, "expired session reads as no session")
	assert.False(t, store.contains(session.ID), "expired session is destroyed on observation")
}

func TestManagerDestroy(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store, "test-secret", time.Hour, false)
	ctx := context.Background()

	session, cookie, err := manager.Issue(ctx, testUser())
	assert.NoError(t, err)
	assert.NoError(t, manager.Destroy(ctx, session))

	loaded, err := manager.Load(ctx, cookie.Value)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
