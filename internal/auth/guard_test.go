package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"foundation/internal/model"
)

func guardFixture(t *testing.T) (*Guard, *Manager, *memStore) {
	t.Helper()
	store := newMemStore()
	manager := NewManager(store, "test-secret", time.Hour, false)
	return NewGuard(manager), manager, store
}

func doRequest(guard *Guard, middleware func(echo.HandlerFunc) echo.HandlerFunc, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := middleware(func(c echo.Context) error {
		reached = true
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec, reached
}

func TestRequireAuthRedirectsWithoutSession(t *testing.T) {
	guard, _, _ := guardFixture(t)

	rec, reached := doRequest(guard, guard.RequireAuth, nil)
	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get("Location"))
}

func TestRequireAuthPassesValidSession(t *testing.T) {
	guard, manager, _ := guardFixture(t)
	_, cookie, err := manager.Issue(context.Background(), testUser())
	assert.NoError(t, err)

	rec, reached := doRequest(guard, guard.RequireAuth, cookie)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthDestroysCorruptSession(t *testing.T) {
	// A session whose role is outside the valid set is treated identically
	// to no session, and destroyed as a side effect.
	guard, manager, store := guardFixture(t)
	session, cookie, err := manager.Issue(context.Background(), testUser())
	assert.NoError(t, err)

	stored, _ := store.Find(context.Background(), session.ID)
	stored.Role = "owner"
	_ = store.Save(context.Background(), stored, time.Hour)

	rec, reached := doRequest(guard, guard.RequireAuth, cookie)
	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get("Location"))
	assert.False(t, store.contains(session.ID), "corrupt session destroyed")
}

func TestRequireAdminDeniesCommunityUser(t *testing.T) {
	guard, manager, _ := guardFixture(t)
	_, cookie, err := manager.Issue(context.Background(), testUser()) // role=user
	assert.NoError(t, err)

	rec, reached := doRequest(guard, guard.RequireAdmin, cookie)
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin privileges required")
}

func TestRequireAdminAllowsAdminAndSuperuser(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleSuperuser} {
		guard, manager, _ := guardFixture(t)
		user := testUser()
		user.Role = role
		_, cookie, err := manager.Issue(context.Background(), user)
		assert.NoError(t, err)

		rec, reached := doRequest(guard, guard.RequireAdmin, cookie)
		assert.True(t, reached, "role %s", role)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	tests := []struct {
		role    model.Role
		landing string
	}{
		{model.RoleUser, CommunityLandingPath},
		{model.RoleAdmin, AdminLandingPath},
		{model.RoleSuperuser, AdminLandingPath},
	}
	for _, tt := range tests {
		guard, manager, _ := guardFixture(t)
		user := testUser()
		user.Role = tt.role
		_, cookie, err := manager.Issue(context.Background(), user)
		assert.NoError(t, err)

		rec, reached := doRequest(guard, guard.RedirectIfAuthenticated, cookie)
		assert.False(t, reached)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, tt.landing, rec.Header().Get("Location"))
	}
}

func TestRedirectIfAuthenticatedFallsThroughWithoutSession(t *testing.T) {
	guard, _, _ := guardFixture(t)
	rec, reached := doRequest(guard, guard.RedirectIfAuthenticated, nil)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}
