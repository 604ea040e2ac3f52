package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDocumentMultipart(t *testing.T) {
	content := []byte("%PDF-1.4 abstract body")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/profile/upload/abstract", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("X-Content-Digest"), "blake3:"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "abstract.pdf", header.Filename)
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, got)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-123")

	err := client.UploadDocument(context.Background(), DocumentAbstract, "abstract.pdf", bytes.NewReader(content))
	require.NoError(t, err)
}

func TestUploadDocumentFailureCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"abstract already submitted"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.UploadDocument(context.Background(), DocumentAbstract, "abstract.pdf", strings.NewReader("%PDF-"))

	require.Error(t, err)
	assert.Equal(t, "abstract already submitted", Message(err, "Upload failed"))
}

func TestValidDocumentKind(t *testing.T) {
	assert.True(t, ValidDocumentKind("abstract"))
	assert.True(t, ValidDocumentKind("prototype"))
	assert.False(t, ValidDocumentKind("poster"))
	assert.False(t, ValidDocumentKind(""))
}
