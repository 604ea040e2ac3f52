package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSessionRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.SetSession("tok-123", "alice", "ADMIN"))

	assert.Equal(t, "tok-123", store.Token())

	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "ADMIN", user.Role)
}

func TestUserAbsentWithoutUsername(t *testing.T) {
	store := NewStore(t.TempDir())

	// A token alone is not enough to report a user.
	require.NoError(t, store.SetSession("tok-123", "", ""))

	_, ok := store.User()
	assert.False(t, ok)
	assert.Equal(t, "tok-123", store.Token())
}

func TestEmptyStore(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Empty(t, store.Token())
	_, ok := store.User()
	assert.False(t, ok)
	assert.Empty(t, store.Reviewer())
}

func TestClear(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.SetSession("tok-123", "alice", "USER"))
	require.NoError(t, store.SetReviewer("Dr. Rao"))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Token())
	_, ok := store.User()
	assert.False(t, ok)

	// The reviewer selection is a convenience field, not a credential.
	assert.Equal(t, "Dr. Rao", store.Reviewer())
}

func TestClearWithoutSession(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.NoError(t, store.Clear())
}

func TestSetUserRefreshesWithoutTouchingToken(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.SetSession("tok-123", "alice", "USER"))
	require.NoError(t, store.SetUser("alice", "ADMIN"))

	assert.Equal(t, "tok-123", store.Token())
	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "ADMIN", user.Role)

	// Empty fields leave the stored values alone.
	require.NoError(t, store.SetUser("", ""))
	user, ok = store.User()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "ADMIN", user.Role)
}

func TestCorruptSessionFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	store := NewStore(dir)
	assert.Empty(t, store.Token())
	_, ok := store.User()
	assert.False(t, ok)
}

func TestSessionFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.SetSession("tok-123", "alice", "USER"))

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestIsAdminRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"ADMIN", true},
		{"ROLE_ADMIN", true},
		{"USER", false},
		{"admin", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAdminRole(tt.role); got != tt.want {
			t.Errorf("IsAdminRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
