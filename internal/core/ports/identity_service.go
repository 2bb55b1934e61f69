package ports

import (
	"context"

	"github.com/eventio/ticket-registry/internal/core/domain"
)

// IdentityService bridges to the external OIDC identity provider.
type IdentityService interface {
	// AuthCodeURL returns the provider's authorization URL for the given
	// anti-forgery state value.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for a verified identity profile.
	Exchange(ctx context.Context, code string) (domain.Principal, error)
	// LogoutURL returns the provider's end-session URL, including the
	// post-logout return destination.
	LogoutURL() string
}
