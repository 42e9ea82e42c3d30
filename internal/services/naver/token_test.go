package naver

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jameskeane/bcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderwatch/internal/logger"
)

// a well-formed bcrypt salt; the vendor issues client secrets in this shape.
const testSecret = "$2a$04$btKPg5JExcAL3sZDX0dznO"

func newTokenTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

func newTestTokenManager(tokenURL string) *TokenManager {
	return NewTokenManager("client-id", testSecret, tokenURL,
		3*time.Hour, 5*time.Minute, nil, logger.New("error"))
}

func TestGetTokenSendsSignedGrant(t *testing.T) {
	var captured map[string]string

	srv := newTokenTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		q := r.URL.Query()
		captured = map[string]string{
			"client_id":          q.Get("client_id"),
			"timestamp":          q.Get("timestamp"),
			"client_secret_sign": q.Get("client_secret_sign"),
			"grant_type":         q.Get("grant_type"),
			"type":               q.Get("type"),
		}
		w.Write([]byte(`{"access_token": "tok-1"}`))
	})
	defer srv.Close()

	m := newTestTokenManager(srv.URL)
	token, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	assert.Equal(t, "client-id", captured["client_id"])
	assert.Equal(t, "client_credentials", captured["grant_type"])
	assert.Equal(t, "SELF", captured["type"])
	require.NotEmpty(t, captured["timestamp"])

	// The signature must be base64(bcrypt(client_id + "_" + timestamp, secret)).
	expected, err := bcrypt.Hash("client-id_"+captured["timestamp"], testSecret)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(expected)), captured["client_secret_sign"])
}

func TestGetTokenCachesUntilRefreshBuffer(t *testing.T) {
	issued := 0
	srv := newTokenTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		issued++
		w.Write([]byte(`{"access_token": "tok"}`))
	})
	defer srv.Close()

	m := newTestTokenManager(srv.URL)
	t0 := time.Now()
	current := t0
	m.now = func() time.Time { return current }

	_, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, issued)

	// Well inside the validity window: cached token is reused.
	current = t0.Add(2 * time.Hour)
	_, err = m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, issued)

	// Inside the refresh buffer: reissued before expiry.
	current = t0.Add(3*time.Hour - 4*time.Minute)
	_, err = m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, issued)
}

func TestInvalidateForcesReissue(t *testing.T) {
	issued := 0
	srv := newTokenTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		issued++
		w.Write([]byte(`{"access_token": "tok"}`))
	})
	defer srv.Close()

	m := newTestTokenManager(srv.URL)
	_, err := m.GetToken(context.Background())
	require.NoError(t, err)

	m.Invalidate()
	m.Invalidate() // idempotent

	_, err = m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, issued)
}

func TestGetTokenMalformedResponseIsAuthError(t *testing.T) {
	calls := 0
	srv := newTokenTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"error": "invalid_client"}`))
			return
		}
		w.Write([]byte(`{"access_token": "tok-2"}`))
	})
	defer srv.Close()

	m := newTestTokenManager(srv.URL)

	_, err := m.GetToken(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Body, "invalid_client")

	// Nothing partial was cached; the next call retries issuance.
	token, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}
