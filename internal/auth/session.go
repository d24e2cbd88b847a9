package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"foundation/internal/cache"
	"foundation/internal/model"
)

// CookieName is the session cookie issued on login.
const CookieName = "foundation_session"

const sessionKeyPrefix = "session:"

// Session is the server-held state correlated to a client via the signed
// cookie. The user fields are a denormalized snapshot taken at login time.
type Session struct {
	ID            string     `json:"id"`
	Authenticated bool       `json:"authenticated"`
	UserID        string     `json:"userId"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          model.Role `json:"role"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     time.Time  `json:"expiresAt"`
}

// IntegrityOK reports whether the snapshot passes the integrity check: all
// four snapshot fields present and the role inside the valid set. A session
// failing this check is treated as corrupt and destroyed on observation.
func (s *Session) IntegrityOK() bool {
	if s == nil || !s.Authenticated {
		return false
	}
	if s.UserID == "" || s.Email == "" || s.Name == "" {
		return false
	}
	return s.Role.Valid()
}

// SessionStore persists sessions server-side. Find returns (nil, nil) when
// the session does not exist.
type SessionStore interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in Redis with the session TTL. Redis
// being unreachable reads as "no session", which fails closed.
type RedisSessionStore struct {
	cache *cache.Client
}

// NewRedisSessionStore builds a store over the shared cache client.
func NewRedisSessionStore(cache *cache.Client) *RedisSessionStore {
	return &RedisSessionStore{cache: cache}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func (s *RedisSessionStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl)
}

func (s *RedisSessionStore) Find(ctx context.Context, id string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil || data == nil {
		return nil, nil
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+id)
}

// Manager issues, loads and destroys sessions. The cookie carries only a
// signed session id; the store is authoritative.
type Manager struct {
	store  SessionStore
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

// NewManager builds a session manager. secure controls the cookie Secure
// flag and should be true in production.
func NewManager(store SessionStore, secret string, maxAge time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		maxAge: maxAge,
		secure: secure,
		now:    time.Now,
	}
}

// Issue creates a session for the user and returns the cookie to set. The
// session is persisted before this function returns, so the client can
// never follow a redirect ahead of the stored state.
func (m *Manager) Issue(ctx context.Context, user *model.User) (*Session, *http.Cookie, error) {
	now := m.now()
	session := &Session{
		ID:            uuid.New().String(),
		Authenticated: true,
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.maxAge),
	}

	if err := m.store.Save(ctx, session, m.maxAge); err != nil {
		return nil, nil, fmt.Errorf("persist session: %w", err)
	}

	token, err := m.signCookie(session)
	if err != nil {
		return nil, nil, fmt.Errorf("sign session cookie: %w", err)
	}
	return session, m.buildCookie(token, int(m.maxAge.Seconds())), nil
}

// Load resolves a cookie value to its server-held session. It returns
// (nil, nil) for missing, expired, or tampered sessions; expiry is absolute
// from creation regardless of activity.
func (m *Manager) Load(ctx context.Context, cookieValue string) (*Session, error) {
	sid, err := m.verifyCookie(cookieValue)
	if err != nil {
		return nil, nil
	}

	session, err := m.store.Find(ctx, sid)
	if err != nil || session == nil {
		return nil, err
	}

	if !session.ExpiresAt.After(m.now()) {
		_ = m.store.Delete(ctx, session.ID)
		return nil, nil
	}
	return session, nil
}

// Destroy removes the server-held session.
func (m *Manager) Destroy(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	return m.store.Delete(ctx, session.ID)
}

// ClearCookie returns an expired cookie that removes the client's copy.
func (m *Manager) ClearCookie() *http.Cookie {
	return m.buildCookie("", -1)
}

func (m *Manager) signCookie(session *Session) (string, error) {
	claims := &jwt.RegisteredClaims{
		ID:        session.ID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) verifyCookie(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.ID, nil
}

func (m *Manager) buildCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
