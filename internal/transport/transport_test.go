package transport

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swcurran/toggl-cli/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCallSendsTokenBasicAuth(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "my-token", discardLogger())
	body, err := client.Call(context.Background(), http.MethodPost, "/time_entries", []byte(`{"time_entry":{}}`))
	require.NoError(t, err)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("my-token:api_token"))
	assert.Equal(t, expected, gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"time_entry":{}}`, string(gotBody))
	assert.JSONEq(t, `{"data":{"id":1}}`, string(body))
}

func TestCallWithoutBodyOmitsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "my-token", discardLogger())
	_, err := client.Call(context.Background(), http.MethodGet, "/workspaces", nil)
	require.NoError(t, err)
}

func TestCallNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("wrong token"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token", discardLogger())
	_, err := client.Call(context.Background(), http.MethodGet, "/me", nil)

	var te *errors.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusForbidden, te.Status)
	assert.Equal(t, "wrong token", te.Body)
	assert.Contains(t, te.Error(), "403")
}

func TestCallMissingToken(t *testing.T) {
	client := NewClient("https://example.test", "", discardLogger())
	_, err := client.Call(context.Background(), http.MethodGet, "/me", nil)
	assert.ErrorIs(t, err, errors.ErrMissingToken)
}

func TestCallNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL, "my-token", discardLogger())
	_, err := client.Call(context.Background(), http.MethodGet, "/me", nil)

	var te *errors.TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.Status)
	assert.Error(t, te.Unwrap())
}
