package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkSMSClient_Send(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":202,"success_message":"SMS Submitted Successfully"}`))
	}))
	defer srv.Close()

	// 202 is not an accepted code
	c := NewBulkSMSClient(Config{BaseURL: srv.URL, APIKey: "key", SenderID: "8809617"}, logger.NewNop())
	err := c.Send(context.Background(), "01711000000", "Your code is: 123456")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindExternal))

	assert.Equal(t, "key", got.Get("api_key"))
	assert.Equal(t, "text", got.Get("type"))
	assert.Equal(t, "01711000000", got.Get("number"))
	assert.Equal(t, "8809617", got.Get("senderid"))
	assert.Equal(t, "Your code is: 123456", got.Get("message"))
}

func TestBulkSMSClient_SuccessCodes(t *testing.T) {
	for _, body := range []string{`{"response_code":1000}`, `{"response_code":"1002"}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c := NewBulkSMSClient(Config{BaseURL: srv.URL, APIKey: "key", SenderID: "id"}, logger.NewNop())
		assert.NoError(t, c.Send(context.Background(), "01711000000", "hello"), body)
		srv.Close()
	}
}

func TestBulkSMSClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":1007,"error_message":"Balance Insufficient"}`))
	}))
	defer srv.Close()

	c := NewBulkSMSClient(Config{BaseURL: srv.URL, APIKey: "key", SenderID: "id"}, logger.NewNop())
	err := c.Send(context.Background(), "01711000000", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Balance Insufficient")

	unconfigured := NewBulkSMSClient(Config{BaseURL: srv.URL}, logger.NewNop())
	assert.True(t, apperror.Is(unconfigured.Send(context.Background(), "017", "x"), apperror.KindExternal))

	assert.True(t, apperror.Is(c.Send(context.Background(), " ", "x"), apperror.KindValidation))
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender(logger.NewNop()).Send(context.Background(), "017", "hello"))
}
