package imagehost

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImgBBClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("img")), r.FormValue("image"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/x/feed.png"}}`))
	}))
	defer srv.Close()

	c := NewImgBBClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, logger.NewNop())
	url, err := c.Upload(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/x/feed.png", url)
}

func TestImgBBClient_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Invalid API v1 key."}}`))
	}))
	defer srv.Close()

	c := NewImgBBClient(Config{BaseURL: srv.URL, APIKey: "bad"}, logger.NewNop())
	_, err := c.Upload(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindExternal))
	assert.Contains(t, err.Error(), "Invalid API v1 key.")
}

func TestImgBBClient_Unconfigured(t *testing.T) {
	c := NewImgBBClient(Config{BaseURL: "http://127.0.0.1:0"}, logger.NewNop())
	_, err := c.Upload(context.Background(), []byte("img"))
	assert.True(t, apperror.Is(err, apperror.KindExternal))

	c = NewImgBBClient(Config{BaseURL: "http://127.0.0.1:0", APIKey: "k"}, logger.NewNop())
	_, err = c.Upload(context.Background(), nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
