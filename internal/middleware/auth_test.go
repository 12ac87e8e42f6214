package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (entities.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(entities.User), args.Error(1)
}

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantUser, user.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	admin := entities.User{ID: "u1", Role: entities.RoleAdmin}

	t.Run("valid token reaches the handler with the user", func(t *testing.T) {
		verifier := new(mockVerifier)
		verifier.On("VerifyToken", mock.Anything, "good-token").Return(admin, nil).Once()

		h := middleware.Authenticate(verifier)(okHandler(t, "u1"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		verifier := new(mockVerifier)

		h := middleware.Authenticate(verifier)(okHandler(t, ""))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "you are not logged in")
		verifier.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
	})

	t.Run("invalid token", func(t *testing.T) {
		verifier := new(mockVerifier)
		verifier.On("VerifyToken", mock.Anything, "bad-token").
			Return(entities.User{}, entities.ErrInvalidToken).Once()

		h := middleware.Authenticate(verifier)(okHandler(t, ""))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid or expired token")
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serveAs := func(user entities.User, withUser bool) *httptest.ResponseRecorder {
		verifier := new(mockVerifier)
		var h http.Handler = middleware.RequireRole(entities.RoleAdmin)(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if withUser {
			verifier.On("VerifyToken", mock.Anything, "token").Return(user, nil).Once()
			h = middleware.Authenticate(verifier)(h)
			req.Header.Set("Authorization", "Bearer token")
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	t.Run("admin passes", func(t *testing.T) {
		rr := serveAs(entities.User{ID: "u1", Role: entities.RoleAdmin}, true)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		rr := serveAs(entities.User{ID: "u2", Role: entities.RoleUser}, true)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "you do not have permission")
	})

	t.Run("no user on context", func(t *testing.T) {
		rr := serveAs(entities.User{}, false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
