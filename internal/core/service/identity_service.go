package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/eventio/ticket-registry/internal/core/domain"
)

var ErrIdentityExchange = errors.New("identity provider exchange failed")

// IdentityConfig holds the settings for the external OIDC provider.
type IdentityConfig struct {
	// Domain is the provider tenant domain, e.g. "example.eu.auth0.com".
	Domain       string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	// BaseURL is the application base URL, used as the post-logout return
	// destination.
	BaseURL string
	// Endpoint overrides the OAuth2 endpoints derived from Domain.
	// Leave zero outside of tests.
	Endpoint oauth2.Endpoint
}

// IdentityService implements the authorization-code flow against the
// configured provider and extracts the session principal from the ID token.
type IdentityService struct {
	cfg    IdentityConfig
	oauth  *oauth2.Config
	issuer string
}

func NewIdentityService(cfg IdentityConfig) *IdentityService {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("https://%s/authorize", cfg.Domain),
			TokenURL: fmt.Sprintf("https://%s/oauth/token", cfg.Domain),
		}
	}

	return &IdentityService{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "profile", "email"},
		},
		issuer: fmt.Sprintf("https://%s/", cfg.Domain),
	}
}

// AuthCodeURL returns the provider's authorization URL for the given
// anti-forgery state value.
func (s *IdentityService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// idTokenClaims is the subset of OIDC ID-token claims the application reads.
type idTokenClaims struct {
	jwt.RegisteredClaims
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// Exchange trades an authorization code for a verified identity profile.
// The ID token is obtained directly from the provider's token endpoint over
// TLS; its claims are parsed and validated for issuer, audience, and expiry.
func (s *IdentityService) Exchange(ctx context.Context, code string) (domain.Principal, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrIdentityExchange, err)
	}

	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return domain.Principal{}, fmt.Errorf("%w: no id_token in response", ErrIdentityExchange)
	}

	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: parse id_token: %v", ErrIdentityExchange, err)
	}

	validator := jwt.NewValidator(
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.cfg.ClientID),
		jwt.WithExpirationRequired(),
	)
	if err := validator.Validate(claims); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: validate id_token: %v", ErrIdentityExchange, err)
	}

	return domain.Principal{
		Subject:    claims.Subject,
		Name:       claims.Name,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
		Email:      claims.Email,
		Picture:    claims.Picture,
	}, nil
}

// LogoutURL returns the provider's end-session URL, sending the user back to
// the application root after logout.
func (s *IdentityService) LogoutURL() string {
	q := url.Values{}
	q.Set("client_id", s.cfg.ClientID)
	q.Set("returnTo", s.cfg.BaseURL)
	return fmt.Sprintf("https://%s/v2/logout?%s", s.cfg.Domain, q.Encode())
}
