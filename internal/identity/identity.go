// Package identity exposes the signed-in identity the core needs.
// Authentication itself is a collaborator concern; absence of identity
// means no tasks and no actions.
package identity

// Provider reports the current signed-in user, if any.
type Provider interface {
	Current() (userID string, ok bool)
}

// Static is a fixed single-user identity, which is all a local tracker
// needs.
type Static string

func (s Static) Current() (string, bool) {
	if s == "" {
		return "", false
	}
	return string(s), true
}
