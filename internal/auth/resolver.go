package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"crm-backend/internal/models"
	"crm-backend/internal/repository"
)

// Typed resolution failures. The middleware collapses every one of them into
// the same generic forbidden response so a caller cannot probe which lookup
// step failed, but tests and logs can tell them apart.
var (
	ErrMalformedAuthHeader = errors.New("auth: malformed authorization header")
	ErrInvalidToken        = errors.New("auth: invalid bearer token")
	ErrUnknownAPIKey       = errors.New("auth: unknown api key")
	ErrNoAdminProfile      = errors.New("auth: org has no admin profile")
	ErrInvalidOrgHeader    = errors.New("auth: invalid org header")
	ErrNoActiveProfile     = errors.New("auth: no active profile for user")
	ErrUnknownUser         = errors.New("auth: unknown user")
	ErrInactiveUser        = errors.New("auth: user is deactivated")
)

// Credentials are the raw request inputs the resolver consults.
type Credentials struct {
	Authorization string // Authorization header, "Bearer <JWT>"
	APIKey        string // Token header, opaque org API key
	OrgHeader     string // org header, tenant selector
}

// Resolver turns raw request credentials into a bound (user, profile, org)
// context, or fails closed. Resolution is total: it returns either a fully
// bound context, an unauthenticated context (no credentials at all), or an
// error. It never returns a context with a user but no profile.
type Resolver struct {
	tokens   *TokenIssuer
	users    repository.UserRepository
	orgs     repository.OrgRepository
	profiles repository.ProfileRepository
}

// NewResolver creates a new Resolver.
func NewResolver(tokens *TokenIssuer, users repository.UserRepository, orgs repository.OrgRepository, profiles repository.ProfileRepository) *Resolver {
	return &Resolver{
		tokens:   tokens,
		users:    users,
		orgs:     orgs,
		profiles: profiles,
	}
}

// Resolve binds the request to a tenant context.
//
// Precedence: a bearer token yields the user id; an API key overrides it,
// pinning the org and acting as the org's first ADMIN-role profile. With a
// user id known, the org header selects the exact active profile; without
// the header the lowest-id active profile is the fallback, so clients that
// omit tenant selection (API explorers) still resolve.
func (r *Resolver) Resolve(creds Credentials) (*RequestContext, error) {
	var userID uint64
	var pinned *models.Profile

	if creds.Authorization != "" {
		raw, ok := strings.CutPrefix(creds.Authorization, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, ErrMalformedAuthHeader
		}

		claims, err := r.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		userID = claims.UserID
	}

	if creds.APIKey != "" {
		org, err := r.orgs.FindByAPIKey(creds.APIKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownAPIKey
			}
			return nil, fmt.Errorf("auth: api key lookup: %w", err)
		}

		// The key authenticates as the org's admin representative, not as
		// a specific human. The org header is ignored on this path.
		profile, err := r.profiles.FirstAdminInOrg(org.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoAdminProfile
			}
			return nil, fmt.Errorf("auth: admin profile lookup: %w", err)
		}

		pinned = profile
		userID = profile.UserID
	}

	if userID == 0 {
		return &RequestContext{}, nil
	}

	user, err := r.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("auth: user lookup: %w", err)
	}

	// Deactivation revokes access immediately, even for unexpired tokens.
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	if pinned != nil {
		return &RequestContext{User: user, Profile: pinned, OrgFromAPIKey: true}, nil
	}

	var profile *models.Profile
	if creds.OrgHeader != "" {
		orgID, err := strconv.ParseUint(creds.OrgHeader, 10, 64)
		if err != nil {
			return nil, ErrInvalidOrgHeader
		}

		profile, err = r.profiles.FindActiveByUserAndOrg(userID, orgID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoActiveProfile
			}
			return nil, fmt.Errorf("auth: profile lookup: %w", err)
		}
	} else {
		profile, err = r.profiles.FirstActiveByUser(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoActiveProfile
			}
			return nil, fmt.Errorf("auth: profile fallback lookup: %w", err)
		}
	}

	return &RequestContext{User: user, Profile: profile}, nil
}
