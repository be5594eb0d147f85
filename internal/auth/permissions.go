package auth

// IsOrgAdmin reports whether the context may manage the org's users. Platform
// flags (superuser, staff) short-circuit to true regardless of tenant; org
// admins are scoped to their own org's profiles through the resolved context.
// Total over any context, including nil and unauthenticated ones.
func IsOrgAdmin(rc *RequestContext) bool {
	if rc == nil || rc.User == nil {
		return false
	}

	if rc.User.IsSuperuser || rc.User.IsStaff {
		return true
	}

	return rc.Profile != nil && rc.Profile.IsOrganizationAdmin
}

// IsSelfOrOrgAdmin reports whether the context may act on the target user:
// staff always may, and a user may always act on themselves.
func IsSelfOrOrgAdmin(rc *RequestContext, targetUserID uint64) bool {
	if rc == nil || rc.User == nil {
		return false
	}

	if rc.User.IsStaff {
		return true
	}

	return rc.User.ID == targetUserID
}
