package domain

// Principal is the authenticated user's identity as asserted by the external
// identity provider. It carries only the claims the application reads and is
// the value stored in the server-side session.
type Principal struct {
	Subject    string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// IsAuthenticated reports whether the principal identifies a logged-in user.
func (p Principal) IsAuthenticated() bool {
	return p.Subject != ""
}

// DisplayName returns the best human-readable name available.
func (p Principal) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Email != "" {
		return p.Email
	}
	return p.Subject
}
