package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sahilphalke/PlayTurf/internal/model"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubVerifier) VerifyAccessToken(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("rejects a missing authorization header", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1"}})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

		mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1"}})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")

		mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token the verifier refuses", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{err: model.ErrTokenExpired})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer expired-token")

		mw.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("puts the claims on the request context", func(t *testing.T) {
		want := &model.AuthClaims{UserID: "u1", Role: model.RoleOwner}
		mw := NewAuthMiddleware(&stubVerifier{claims: want})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := ClaimsFromContext(r.Context())
			require.True(t, ok)
			require.Equal(t, want, got)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthMiddleware_RequireRoles(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u1", Role: model.RoleUser}})

	handler := mw.RequireAuth(mw.RequireRoles(model.RoleOwner)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("forbids a role outside the allow list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("passes an allowed role through", func(t *testing.T) {
		owner := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "u2", Role: model.RoleOwner}})
		allowed := owner.RequireAuth(owner.RequireRoles(model.RoleOwner)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer good-token")

		allowed.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
