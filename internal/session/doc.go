// Package session implements the storefront's session manager: account
// registration, login and logout against the remote store, the
// one-active-session-per-account policy, and persistence of the current
// identity in the client-local database.
package session
