package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/config"
)

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(config.NotifierConfig{})
	assert.Error(t, err)
}

func TestSendText(t *testing.T) {
	var gotBody message
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(config.NotifierConfig{WebhookURL: srv.URL, Token: "secret"})
	require.NoError(t, err)

	require.NoError(t, client.SendText(context.Background(), "Stock summary"))
	assert.Equal(t, "Stock summary", gotBody.Text)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestSendText_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer srv.Close()

	client, err := NewClient(config.NotifierConfig{WebhookURL: srv.URL})
	require.NoError(t, err)

	err = client.SendText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
	assert.Contains(t, err.Error(), "invalid_token")
}

func TestSendText_Empty(t *testing.T) {
	client, err := NewClient(config.NotifierConfig{WebhookURL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.Error(t, client.SendText(context.Background(), ""))
}
