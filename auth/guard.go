// Package auth holds the admin allow-list guard and the session token verifier.
package auth

import (
	"github.com/quantonganh/codebinge"
)

// AllowList authorizes identities whose email is in a fixed set of admin emails.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList copies emails into an immutable allow-list. Empty entries are skipped.
func NewAllowList(emails []string) *AllowList {
	a := &AllowList{
		emails: make(map[string]struct{}, len(emails)),
	}
	for _, e := range emails {
		if e == "" {
			continue
		}
		a.emails[e] = struct{}{}
	}
	return a
}

// Authorize returns codebinge.ErrAccessDenied unless identity carries an allow-listed email.
// Matching is exact.
func (a *AllowList) Authorize(identity *codebinge.Identity) error {
	if identity == nil || identity.Email == "" {
		return codebinge.ErrAccessDenied
	}
	if _, ok := a.emails[identity.Email]; !ok {
		return codebinge.ErrAccessDenied
	}
	return nil
}
