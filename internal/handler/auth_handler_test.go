package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sahilphalke/PlayTurf/internal/config"
	"github.com/Sahilphalke/PlayTurf/internal/handler"
	"github.com/Sahilphalke/PlayTurf/internal/middleware"
	"github.com/Sahilphalke/PlayTurf/internal/model"
	"github.com/Sahilphalke/PlayTurf/internal/router"
	"github.com/Sahilphalke/PlayTurf/internal/service"
)

type memStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemStore() *memStore {
	return &memStore{users: map[string]model.User{}}
}

func (s *memStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.ErrUserAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) Update(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	s.users[u.ID] = u
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func newTestServer(t *testing.T) (http.Handler, *memStore) {
	t.Helper()

	store := newMemStore()
	issuer, err := service.NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 168*time.Hour)
	require.NoError(t, err)

	userService := service.NewUserService(store, service.NewPasswordHasher(4), issuer)
	authMiddleware := middleware.NewAuthMiddleware(userService)

	cfg := &config.Config{
		RequestTimeout:   5 * time.Second,
		AuthRateLimitRPM: 10000,
	}

	return router.New(cfg, authMiddleware, router.Handlers{
		Auth: handler.NewAuthHandler(userService),
		User: handler.NewUserHandler(userService),
	}), store
}

func doJSON(t *testing.T, h http.Handler, method string, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()

	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func registerJane(t *testing.T, h http.Handler) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Name:      "Jane",
		Email:     "Jane@X.com",
		Password:  "secret123",
		ContactNo: "+1555",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
}

func loginJane(t *testing.T, h http.Handler) model.TokenPair {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email:    "jane@x.com",
		Password: "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var pair model.TokenPair
	require.NoError(t, json.Unmarshal(raw, &pair))
	return pair
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates the account with defaults and no hash in the body", func(t *testing.T) {
		h, _ := newTestServer(t)

		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
			Name:      "Jane",
			Email:     "Jane@X.com",
			Password:  "secret123",
			ContactNo: "+1555",
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		body := strings.ToLower(rec.Body.String())
		require.NotContains(t, body, "password")
		require.NotContains(t, body, "secret123")

		resp := decodeResponse(t, rec)
		require.True(t, resp.Success)

		data, _ := resp.Data.(map[string]any)
		require.Equal(t, "jane@x.com", data["email"])
		require.Equal(t, "USER", data["role"])
		require.Equal(t, "UTC", data["timezone"])
	})

	t.Run("rejects a case-variant duplicate", func(t *testing.T) {
		h, _ := newTestServer(t)
		registerJane(t, h)

		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
			Name:      "Other",
			Email:     "JANE@x.COM",
			Password:  "different",
			ContactNo: "+2",
		}, "")
		require.Equal(t, http.StatusConflict, rec.Code)

		resp := decodeResponse(t, rec)
		require.Equal(t, "User already exists", resp.Error.Message)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		h, _ := newTestServer(t)

		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
			Email: "jane@x.com",
		}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns a token pair and the sanitized account", func(t *testing.T) {
		h, _ := newTestServer(t)
		registerJane(t, h)

		pair := loginJane(t, h)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "Bearer", pair.TokenType)
		require.Equal(t, "jane@x.com", pair.User.Email)
	})

	t.Run("wrong password and unknown email read identically", func(t *testing.T) {
		h, _ := newTestServer(t)
		registerJane(t, h)

		wrongPassword := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
			Email: "jane@x.com", Password: "wrong",
		}, "")
		unknownEmail := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
			Email: "nobody@x.com", Password: "secret123",
		}, "")

		require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		require.Equal(t, "Invalid credentials", decodeResponse(t, wrongPassword).Error.Message)
		require.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})

	t.Run("deactivated account gets its own message", func(t *testing.T) {
		h, store := newTestServer(t)
		registerJane(t, h)

		user, err := store.FindByEmail(context.Background(), "jane@x.com")
		require.NoError(t, err)
		user.IsActive = false
		require.NoError(t, store.Update(context.Background(), user))

		rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
			Email: "jane@x.com", Password: "secret123",
		}, "")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "User is inactive", decodeResponse(t, rec).Error.Message)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	registerJane(t, h)
	pair := loginJane(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/refresh", model.RefreshRequest{
		RefreshToken: pair.RefreshToken,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// The access token is not accepted in the refresh slot.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/refresh", model.RefreshRequest{
		RefreshToken: pair.AccessToken,
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	registerJane(t, h)
	pair := loginJane(t, h)

	t.Run("requires a bearer token", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/auth/me", nil, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the profile without the hash", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/auth/me", nil, pair.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, strings.ToLower(rec.Body.String()), "password")

		resp := decodeResponse(t, rec)
		data, _ := resp.Data.(map[string]any)
		require.Equal(t, "jane@x.com", data["email"])
	})

	t.Run("rejects the refresh token as a bearer credential", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/auth/me", nil, pair.RefreshToken)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserAdminEndpoints(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	registerJane(t, h)
	janePair := loginJane(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", model.RegisterRequest{
		Name:      "Omar",
		Email:     "omar@x.com",
		Password:  "ownerpass",
		ContactNo: "+2666",
		Role:      "OWNER",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email: "omar@x.com", Password: "ownerpass",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ownerPair model.TokenPair
	raw, err := json.Marshal(decodeResponse(t, rec).Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &ownerPair))

	t.Run("listing is owner-only", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/users/", nil, janePair.AccessToken)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/users/", nil, ownerPair.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, strings.ToLower(rec.Body.String()), "password")
	})

	t.Run("profile update applies only the supplied fields", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, "/api/v1/users/me", model.UpdateProfileRequest{
			Name: "Jane Doe",
		}, janePair.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, _ := resp.Data.(map[string]any)
		require.Equal(t, "Jane Doe", data["name"])
		require.Equal(t, "+1555", data["contact_no"])
	})

	t.Run("delete is owner-only", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, "/api/v1/users/"+ownerPair.User.ID, nil, janePair.AccessToken)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = doJSON(t, h, http.MethodDelete, "/api/v1/users/"+janePair.User.ID, nil, ownerPair.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
