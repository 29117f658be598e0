// Package authstate tracks the authentication state of a portal client: the
// current user, the session tokens and whether the user holds the admin
// role. The Store mirrors the lifecycle the portal's web client uses: one
// gated initial fetch, then event-driven updates.
package authstate

import "time"

// AuthEvent identifies why the auth state changed
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEvent = "USER_UPDATED"
	EventInitialSession AuthEvent = "INITIAL_SESSION"
)

// User is the identity part of a session
type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// Session carries the tokens of an authenticated user
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn"`
	User         *User  `json:"user"`
}

// State is one immutable snapshot of the auth state. Loading is true from
// construction until the initial fetch (and the role check, when a user
// exists) has finished.
type State struct {
	User    *User
	Session *Session
	IsAdmin bool
	Loading bool
}
