package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	"github.com/felixgeelhaar/hackdesk/internal/session"
)

func newService(t *testing.T, handler http.Handler) (*Service, *session.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(t.TempDir())
	return NewService(api.NewClient(server.URL), store), store
}

func TestLoginPersistsSession(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"token":    "tok-123",
			"username": "alice",
			"role":     "USER",
		})
	}))

	result, route := svc.Login(context.Background(), "alice", "hunter2")

	require.True(t, result.Success)
	assert.Equal(t, RouteHome, route)
	assert.Equal(t, "tok-123", store.Token())

	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "USER", user.Role)
}

func TestLoginWithoutTokenIsFailure(t *testing.T) {
	// HTTP-OK but no token field: still a failed login, nothing stored.
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"username": "alice"})
	}))

	result, route := svc.Login(context.Background(), "alice", "hunter2")

	assert.False(t, result.Success)
	assert.Equal(t, "Login failed", result.Message)
	assert.Equal(t, RouteHome, route)
	assert.Empty(t, store.Token())
	_, ok := store.User()
	assert.False(t, ok)
}

func TestLoginRoleRouting(t *testing.T) {
	tests := []struct {
		role string
		want Route
	}{
		{"ADMIN", RouteAdmin},
		{"ROLE_ADMIN", RouteAdmin},
		{"USER", RouteHome},
		{"", RouteHome},
		{"JUDGE", RouteHome},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{
					"token":    "tok-123",
					"username": "alice",
					"role":     tt.role,
				})
			}))

			result, route := svc.Login(context.Background(), "alice", "hunter2")

			require.True(t, result.Success)
			assert.Equal(t, tt.want, route)

			// Absent role defaults to USER in the stored session.
			user, ok := store.User()
			require.True(t, ok)
			if tt.role == "" {
				assert.Equal(t, session.RoleUser, user.Role)
			} else {
				assert.Equal(t, tt.role, user.Role)
			}
		})
	}
}

func TestLoginRejectedCarriesBackendMessage(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))

	result, _ := svc.Login(context.Background(), "alice", "wrong")

	assert.False(t, result.Success)
	assert.Equal(t, "Bad credentials", result.Message)
}

func TestLoginNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewService(api.NewClient(server.URL), session.NewStore(t.TempDir()))
	result, _ := svc.Login(context.Background(), "alice", "hunter2")

	assert.False(t, result.Success)
	assert.Equal(t, "Network error", result.Message)
}

func TestSignupStoresNothing(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "created"})
	}))

	result := svc.Signup(context.Background(), "alice", "hunter2")

	assert.True(t, result.Success)
	assert.Equal(t, "Signup successful", result.Message)
	assert.Empty(t, store.Token())
}

func TestVerifyAuthWithoutTokenSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	state := svc.VerifyAuth(context.Background())

	assert.False(t, state.Authenticated)
	assert.Equal(t, int32(0), calls.Load(), "no stored token must mean no network call")
}

func TestVerifyAuthRefreshesCachedUser(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"username": "alice", "role": "ADMIN"})
	}))

	require.NoError(t, store.SetSession("tok-123", "alice", "USER"))

	state := svc.VerifyAuth(context.Background())

	require.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "ADMIN", state.User.Role)

	// The cached role follows the backend's answer.
	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "ADMIN", user.Role)
}

func TestVerifyAuthRejectedClearsSession(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	require.NoError(t, store.SetSession("tok-expired", "alice", "ADMIN"))

	state := svc.VerifyAuth(context.Background())

	assert.False(t, state.Authenticated)
	assert.Empty(t, store.Token(), "a definitive 401 must clear the stale session")
	_, ok := store.User()
	assert.False(t, ok)
}

func TestVerifyAuthNetworkErrorKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	store := session.NewStore(t.TempDir())
	require.NoError(t, store.SetSession("tok-123", "alice", "USER"))

	svc := NewService(api.NewClient(server.URL), store)
	state := svc.VerifyAuth(context.Background())

	assert.False(t, state.Authenticated)
	assert.Equal(t, "tok-123", store.Token(), "unreachable server says nothing about session validity")
}

func TestLogout(t *testing.T) {
	svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout must not call the network")
	}))

	require.NoError(t, store.SetSession("tok-123", "alice", "USER"))

	route, err := svc.Logout()

	require.NoError(t, err)
	assert.Equal(t, RouteHome, route)
	assert.Empty(t, store.Token())
}
