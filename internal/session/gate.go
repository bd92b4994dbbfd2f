package session

import "github.com/mentora/mentora/pkg/domain"

// Decision is the outcome of an authorization check for a view.
type Decision int

const (
	// ShowLoading means session resolution is still in flight; render a
	// neutral loading state, not a redirect.
	ShowLoading Decision = iota
	// Allow renders the requested view.
	Allow
	// RedirectToLogin sends an unauthenticated user to the login view.
	RedirectToLogin
	// RedirectToDefault sends an under-privileged user to their default
	// view. Never surfaced as an error.
	RedirectToDefault
)

// Authorize decides whether the session may reach a view that requires the
// given role; an empty required role means any authenticated user. Admins
// pass every role check. The result must be recomputed on every navigation —
// session state can change between render passes, so it is never cached.
func Authorize(s Session, required domain.Role) Decision {
	if s.Loading {
		return ShowLoading
	}
	if s.User == nil {
		return RedirectToLogin
	}
	if required != "" && s.User.Role != required && s.User.Role != domain.RoleAdmin {
		return RedirectToDefault
	}
	return Allow
}
