package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageHostUploader_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "data:image/png;base64,aGVsbG8=", r.PostFormValue("image"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://img.example/stored.png"}`))
	}))
	defer server.Close()

	uploader := NewImageHostUploader(server.Client(), server.URL, "test-key")

	url, err := uploader.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/stored.png", url)
}

func TestImageHostUploader_HostError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	uploader := NewImageHostUploader(server.Client(), server.URL, "test-key")

	_, err := uploader.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestImageHostUploader_EmptyURLInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	uploader := NewImageHostUploader(server.Client(), server.URL, "test-key")

	_, err := uploader.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.Error(t, err)
}

func TestImageHostUploader_NotConfigured(t *testing.T) {
	uploader := NewImageHostUploader(nil, "", "")

	_, err := uploader.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.Error(t, err)
}
