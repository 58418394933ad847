package app

import "context"

// Profile identifies the authenticated account.
type Profile struct {
	ID          string
	Username    string
	DisplayName string
}

// AccountService provides information about the authenticated user.
type AccountService interface {
	// CurrentProfile returns the authenticated user's profile.
	CurrentProfile(ctx context.Context) (Profile, error)
}
