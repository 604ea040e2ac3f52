package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds["username"])
		assert.Equal(t, "hunter2", creds["password"])

		json.NewEncoder(w).Encode(map[string]string{
			"token":    "tok-123",
			"username": "alice",
			"role":     "ADMIN",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), "alice", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "ADMIN", resp.Role)
}

func TestLoginFailureCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Bad credentials", Message(err, "Login failed"))
}

func TestMeSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"username": "alice", "role": "USER"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "USER", user.Role)
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Me(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestNetworkErrorClassification(t *testing.T) {
	// Point at a closed server to force a transport failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Me(context.Background())

	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestDecideBody(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/admin/teams/7/decision", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")

	err := client.Decide(context.Background(), 7, StatusSelected, "Dr. Rao")
	require.NoError(t, err)
	assert.Equal(t, "SELECTED", got["status"])
	assert.Equal(t, "Dr. Rao", got["reviewedBy"])
}

func TestDecideConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Decide(context.Background(), 7, StatusRejected, "Dr. Rao")

	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestListTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/teams", r.URL.Path)
		json.NewEncoder(w).Encode([]Team{
			{
				ID:          1,
				TeamName:    "Null Pointers",
				CollegeName: "State Engineering College",
				LeaderName:  "Asha",
				MemberCount: 3,
				Members:     []string{"Asha", "Ben", "Chitra"},
				Status:      StatusPending,
			},
			{
				ID:         2,
				TeamName:   "Segfault Squad",
				Status:     StatusSelected,
				ReviewedBy: "Dr. Rao",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	teams, err := client.ListTeams(context.Background())

	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.True(t, teams[0].Pending())
	assert.False(t, teams[1].Pending())
	assert.Equal(t, []string{"Asha", "Ben", "Chitra"}, teams[0].Members)
}

func TestFetchDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchDocument(context.Background(), 7, DocumentAbstract)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestFetchDocument(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake body")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/teams/7/prototype", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write(pdf)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")

	data, err := client.FetchDocument(context.Background(), 7, DocumentPrototype)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestProfileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Profile(context.Background())

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
