// Package naver implements the Commerce API integration: token lifecycle and
// the authenticated order list/detail calls.
package naver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"orderwatch/internal/logger"

	"github.com/jameskeane/bcrypt"
)

// AuthError means the token endpoint answered without an access token.
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token issuance failed: %s", e.Body)
}

// TokenManager caches the API access token and reissues it before expiry.
// It is only driven by the polling loop, so no locking is needed.
type TokenManager struct {
	clientID     string
	clientSecret string
	tokenURL     string
	expiresIn    time.Duration
	buffer       time.Duration
	httpClient   *http.Client
	logger       *logger.Logger
	now          func() time.Time

	token    string
	issuedAt time.Time
}

func NewTokenManager(clientID, clientSecret, tokenURL string, expiresIn, buffer time.Duration, httpClient *http.Client, logger *logger.Logger) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		expiresIn:    expiresIn,
		buffer:       buffer,
		httpClient:   httpClient,
		logger:       logger,
		now:          time.Now,
	}
}

// GetToken returns a currently valid token, issuing a new one when none is
// held or the cached one is inside the refresh buffer.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	if m.shouldRefresh() {
		token, err := m.issue(ctx)
		if err != nil {
			return "", err
		}
		m.token = token
		m.issuedAt = m.now()
	}
	return m.token, nil
}

// Invalidate drops the cached token so the next call reissues. Idempotent.
func (m *TokenManager) Invalidate() {
	m.logger.Info("token invalidated, will reissue on next call")
	m.token = ""
	m.issuedAt = time.Time{}
}

func (m *TokenManager) shouldRefresh() bool {
	if m.token == "" || m.issuedAt.IsZero() {
		return true
	}
	return m.now().Sub(m.issuedAt) >= m.expiresIn-m.buffer
}

// issue performs the vendor's client_credentials grant. The signature scheme
// (bcrypt over "clientID_millis" keyed by the secret, then base64) and the
// query-string parameter carriage are fixed by the vendor.
func (m *TokenManager) issue(ctx context.Context) (string, error) {
	timestamp := strconv.FormatInt(m.now().UnixMilli(), 10)

	sign, err := m.signSecret(timestamp)
	if err != nil {
		return "", fmt.Errorf("failed to sign client secret: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", m.clientID)
	params.Set("timestamp", timestamp)
	params.Set("client_secret_sign", sign)
	params.Set("grant_type", "client_credentials")
	params.Set("type", "SELF")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL+"?"+params.Encode(), strings.NewReader(""))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", &AuthError{Body: snippet(body, 300)}
	}

	m.logger.Info("issued new access token (%s)", m.now().In(KST).Format("15:04:05"))
	return tokenResp.AccessToken, nil
}

// signSecret computes base64(bcrypt(clientID + "_" + timestamp, secret)).
// The client secret doubles as the bcrypt salt, cost factor included.
func (m *TokenManager) signSecret(timestamp string) (string, error) {
	hashed, err := bcrypt.Hash(m.clientID+"_"+timestamp, m.clientSecret)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(hashed)), nil
}

func snippet(body []byte, max int) string {
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
