// Package authz holds the per-operation capability checks. Each check
// returns an explicit allow/deny decision with a reason, evaluated before
// the corresponding service call mutates anything.
package authz

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanModifyMovie allows only the movie's creator to update or delete it.
// Staff get no special treatment here: movie mutation is owner-or-read-only.
func CanModifyMovie(requesterID, creatorID uint) Decision {
	if requesterID == 0 {
		return deny("authentication required")
	}
	if requesterID != creatorID {
		return deny("only the movie creator can modify it")
	}
	return allow()
}

// CanMutateRating requires an authenticated requester. Ownership of a
// specific rating row is re-verified inside the rating service, because a
// rating id alone does not imply the caller owns it.
func CanMutateRating(requesterID uint) Decision {
	if requesterID == 0 {
		return deny("authentication required")
	}
	return allow()
}

// CanFileReport requires an authenticated requester.
func CanFileReport(requesterID uint) Decision {
	if requesterID == 0 {
		return deny("authentication required")
	}
	return allow()
}

// CanModerateReports gates report resolution and statistics.
func CanModerateReports(isStaff bool) Decision {
	if !isStaff {
		return deny("staff access required")
	}
	return allow()
}
