package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	testDomain   = "tenant.example.auth0.com"
	testClientID = "client-id-123"
)

func signIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	// The service validates claims, not the signature: the token arrives
	// directly from the token endpoint over TLS.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTokenEndpoint(t *testing.T, idToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST to token endpoint, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"access_token": "access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		if idToken != "" {
			resp["id_token"] = idToken
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestIdentityService(srv *httptest.Server) *IdentityService {
	return NewIdentityService(IdentityConfig{
		Domain:       testDomain,
		ClientID:     testClientID,
		ClientSecret: "client-secret",
		CallbackURL:  "http://localhost:8080/callback",
		BaseURL:      "http://localhost:8080",
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/authorize",
			TokenURL: srv.URL + "/oauth/token",
		},
	})
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":         "https://" + testDomain + "/",
		"aud":         testClientID,
		"sub":         "auth0|user-1",
		"exp":         time.Now().Add(time.Hour).Unix(),
		"name":        "Ivan Horvat",
		"given_name":  "Ivan",
		"family_name": "Horvat",
		"email":       "ivan@example.com",
	}
}

func TestIdentityService_AuthCodeURL(t *testing.T) {
	svc := NewIdentityService(IdentityConfig{
		Domain:      testDomain,
		ClientID:    testClientID,
		CallbackURL: "http://localhost:8080/callback",
		BaseURL:     "http://localhost:8080",
	})

	raw := svc.AuthCodeURL("state-xyz")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid URL: %v", err)
	}
	if u.Host != testDomain || u.Path != "/authorize" {
		t.Fatalf("unexpected authorize URL: %s", raw)
	}
	q := u.Query()
	if q.Get("state") != "state-xyz" {
		t.Fatalf("state not propagated: %s", raw)
	}
	if q.Get("client_id") != testClientID {
		t.Fatalf("client_id missing: %s", raw)
	}
	if !strings.Contains(q.Get("scope"), "openid") {
		t.Fatalf("openid scope missing: %s", raw)
	}
}

func TestIdentityService_Exchange_Success(t *testing.T) {
	srv := newTokenEndpoint(t, signIDToken(t, validClaims()))
	svc := newTestIdentityService(srv)

	p, err := svc.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if p.Subject != "auth0|user-1" {
		t.Fatalf("unexpected subject: %q", p.Subject)
	}
	if p.Name != "Ivan Horvat" || p.GivenName != "Ivan" || p.FamilyName != "Horvat" {
		t.Fatalf("unexpected name claims: %+v", p)
	}
	if p.Email != "ivan@example.com" {
		t.Fatalf("unexpected email: %q", p.Email)
	}
	if !p.IsAuthenticated() {
		t.Fatalf("expected authenticated principal")
	}
}

func TestIdentityService_Exchange_WrongIssuer(t *testing.T) {
	claims := validClaims()
	claims["iss"] = "https://evil.example.com/"
	srv := newTokenEndpoint(t, signIDToken(t, claims))
	svc := newTestIdentityService(srv)

	if _, err := svc.Exchange(context.Background(), "auth-code"); !errors.Is(err, ErrIdentityExchange) {
		t.Fatalf("expected ErrIdentityExchange, got %v", err)
	}
}

func TestIdentityService_Exchange_WrongAudience(t *testing.T) {
	claims := validClaims()
	claims["aud"] = "someone-else"
	srv := newTokenEndpoint(t, signIDToken(t, claims))
	svc := newTestIdentityService(srv)

	if _, err := svc.Exchange(context.Background(), "auth-code"); !errors.Is(err, ErrIdentityExchange) {
		t.Fatalf("expected ErrIdentityExchange, got %v", err)
	}
}

func TestIdentityService_Exchange_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	srv := newTokenEndpoint(t, signIDToken(t, claims))
	svc := newTestIdentityService(srv)

	if _, err := svc.Exchange(context.Background(), "auth-code"); !errors.Is(err, ErrIdentityExchange) {
		t.Fatalf("expected ErrIdentityExchange, got %v", err)
	}
}

func TestIdentityService_Exchange_MissingIDToken(t *testing.T) {
	srv := newTokenEndpoint(t, "")
	svc := newTestIdentityService(srv)

	if _, err := svc.Exchange(context.Background(), "auth-code"); !errors.Is(err, ErrIdentityExchange) {
		t.Fatalf("expected ErrIdentityExchange, got %v", err)
	}
}

func TestIdentityService_LogoutURL(t *testing.T) {
	svc := NewIdentityService(IdentityConfig{
		Domain:   testDomain,
		ClientID: testClientID,
		BaseURL:  "http://localhost:8080",
	})

	raw := svc.LogoutURL()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid URL: %v", err)
	}
	if u.Host != testDomain || u.Path != "/v2/logout" {
		t.Fatalf("unexpected logout URL: %s", raw)
	}
	q := u.Query()
	if q.Get("client_id") != testClientID {
		t.Fatalf("client_id missing: %s", raw)
	}
	if q.Get("returnTo") != "http://localhost:8080" {
		t.Fatalf("returnTo missing: %s", raw)
	}
}
