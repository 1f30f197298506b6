package codebinge

// Identity is the authenticated caller, as asserted by the session verifier.
type Identity struct {
	Email string
}

// Guard decides whether an identity may perform administrative operations.
// Authorize returns nil when the caller is allowed and ErrAccessDenied otherwise.
type Guard interface {
	Authorize(identity *Identity) error
}

// SessionVerifier turns an opaque session token into an Identity.
type SessionVerifier interface {
	Verify(token string) (*Identity, error)
}
