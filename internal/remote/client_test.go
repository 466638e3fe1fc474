package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modular-tools/cli/internal/apperr"
)

func TestLoginSuccess(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-Id")

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "admin", req.Username)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"jwt":      "token-123",
			"version":  "3.2.0",
			"meta":     map[string]any{"billing": []any{}},
			"warnings": []string{"password expires soon"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	res, err := client.Login("admin", "secret")
	require.NoError(t, err)

	require.Equal(t, "token-123", res.Token)
	require.Equal(t, "3.2.0", res.Version)
	require.JSONEq(t, `{"billing": []}`, string(res.Catalog))
	require.Equal(t, []string{"password expires soon"}, res.Warnings)
	require.NotEmpty(t, gotRequestID)
}

func TestLoginUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Login("admin", "wrong")
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.Unauthorized, ae.Kind)
	require.Equal(t, "bad credentials", ae.Message)
}

func TestRemoteCodeTranslation(t *testing.T) {
	tests := []struct {
		status int
		kind   apperr.Kind
	}{
		{400, apperr.BadRequest},
		{403, apperr.Forbidden},
		{404, apperr.NotFound},
		{409, apperr.Conflict},
		{426, apperr.UpdateRequired},
		{500, apperr.Internal},
		{502, apperr.BadGateway},
		{503, apperr.ServiceUnavailable},
		{504, apperr.GatewayTimeout},
		// unrecognized codes fall back to internal
		{418, apperr.Internal},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		_, err := NewClient(srv.URL, "t").Execute("/billing/invoice/describe", nil)
		srv.Close()
		require.Error(t, err)

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		require.Equal(t, tt.kind, ae.Kind, "status %d", tt.status)
	}
}

func TestExecuteForwardsArgsAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/billing/invoice/describe", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var req execRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []string{"--id", "42"}, req.Parameters)

		_ = json.NewEncoder(w).Encode(map[string]any{"message": "done"})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL, "token-123").Execute("/billing/invoice/describe", []string{"--id", "42"})
	require.NoError(t, err)
	require.Equal(t, "done", res.Message)
}

func TestExecutePlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain output\n"))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL, "t").Execute("/x/y/z", nil)
	require.NoError(t, err)
	require.Equal(t, "plain output", res.Message)
}

func TestUnreachableGateway(t *testing.T) {
	// grab an address that refuses connections by closing the server first
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL, "t").Execute("/billing/invoice/describe", nil)
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.ServiceUnavailable, ae.Kind)
	require.Contains(t, ae.Message, "unreachable")
}

func TestUnconfiguredClient(t *testing.T) {
	_, err := NewClient("", "").Login("a", "b")
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.ServiceUnavailable, ae.Kind)
}
