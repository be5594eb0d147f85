package auth

import (
	"crm-backend/internal/models"
)

// RequestContext is the per-request resolution result: either fully bound
// (User and Profile both set, Profile active and belonging to exactly one
// org) or unauthenticated (both nil). The resolver never produces a context
// with a user and no profile.
type RequestContext struct {
	User    *models.User
	Profile *models.Profile

	// OrgFromAPIKey marks contexts whose org was pinned by an API key; the
	// resolved org id is then echoed into the request metadata for
	// downstream consumers.
	OrgFromAPIKey bool
}

// Authenticated reports whether the context is fully bound. Callers must
// treat a missing profile as unauthenticated even if a user is present.
func (rc *RequestContext) Authenticated() bool {
	return rc != nil && rc.User != nil && rc.Profile != nil
}

// OrgID returns the tenant the request is acting in, or 0 when unauthenticated.
func (rc *RequestContext) OrgID() uint64 {
	if rc == nil || rc.Profile == nil {
		return 0
	}
	return rc.Profile.OrgID
}
