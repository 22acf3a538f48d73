package users

import "context"

// Lookup resolves whether a user id exists in the external identity provider.
// User records themselves (profile, credentials) are owned elsewhere; this
// backend only ever needs existence checks for referenced ids.
type Lookup interface {
	Exists(ctx context.Context, userId string) (bool, error)
}
