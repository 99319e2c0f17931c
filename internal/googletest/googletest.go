// Package googletest provides fakes for Google service-account credentials and
// the OAuth token endpoint, for use in tests.
package googletest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const (
	// ServiceAccountEmail is the client_email written by ServiceAccountJSON.
	ServiceAccountEmail = "sheetcheck@test-project.iam.gserviceaccount.com"

	// AccessToken is the token handed out by TokenServer.
	AccessToken = "test-access-token"
)

var (
	keyOnce sync.Once
	keyPEM  []byte
	keyErr  error
)

func privateKeyPEM() ([]byte, error) {
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			keyErr = err
			return
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			keyErr = err
			return
		}
		keyPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	})
	return keyPEM, keyErr
}

// ServiceAccountJSON returns the contents of a service-account key file whose
// token_uri points at tokenURL.
func ServiceAccountJSON(tb testing.TB, tokenURL string) []byte {
	tb.Helper()

	key, err := privateKeyPEM()
	if err != nil {
		tb.Fatalf("failed to generate private key: %v", err)
	}

	data, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "test-project",
		"private_key_id": "test-key-id",
		"private_key":    string(key),
		"client_email":   ServiceAccountEmail,
		"client_id":      "1234567890",
		"auth_uri":       "https://accounts.google.com/o/oauth2/auth",
		"token_uri":      tokenURL,
	})
	if err != nil {
		tb.Fatalf("failed to marshal service account: %v", err)
	}
	return data
}

// TokenServer is a fake OAuth2 token endpoint for the JWT bearer grant.
type TokenServer struct {
	*httptest.Server

	mu         sync.Mutex
	requests   int
	failStatus int
}

// NewTokenServer starts a TokenServer that is closed when the test ends.
func NewTokenServer(tb testing.TB) *TokenServer {
	tb.Helper()

	ts := &TokenServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.serveToken))
	tb.Cleanup(ts.Close)
	return ts
}

// Fail makes every following token request fail with the given status.
func (ts *TokenServer) Fail(status int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failStatus = status
}

// Requests returns how many token requests were served.
func (ts *TokenServer) Requests() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests
}

func (ts *TokenServer) serveToken(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	ts.requests++
	failStatus := ts.failStatus
	ts.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost || r.ParseForm() != nil || r.PostForm.Get("assertion") == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_request"})
		return
	}

	if failStatus != 0 {
		w.WriteHeader(failStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid JWT Signature.",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": AccessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}
