// Package common defines shared sentinel errors used across the ShopCart
// client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Registration / authentication errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrAlreadyLoggedIn    = errors.New("you cannot login on another device")

	// ErrUnauthenticated is returned when a cart or checkout operation is
	// attempted with no locally persisted session.
	ErrUnauthenticated = errors.New("not authenticated")

	// Checkout errors.
	ErrEmptyCart = errors.New("cart is empty")
)
