// Package models contains the client-side snapshots of the remote rows the
// storefront works with. None of these types are owned in-process beyond the
// lifetime of the snapshot; the backing store is the source of truth.
package models

import "time"

// Account is a registered user identity. Token is non-empty while exactly
// one session is open for the account.
type Account struct {
	ID       string
	Username string
	Password string // digest, never plaintext
	Token    string
}

// Session is the client-held identity derived from a successful login.
// It is persisted locally; the Account row's token column remains the only
// durable record of an outstanding session.
type Session struct {
	Token     string    `json:"token"`
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Item is a purchasable catalog entry. Read-only from the client's
// perspective.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    string
}

// CartLine is one (item, quantity) entry of a cart. Item is the joined
// catalog snapshot and may be nil if the catalog row has gone missing.
type CartLine struct {
	ID       string
	CartID   string
	ItemID   string
	Quantity int
	Item     *Item
}

// Order is a committed checkout. Immutable once created.
type Order struct {
	ID        string
	AccountID string
	Total     float64
	CreatedAt time.Time
}

// OrderLine snapshots one cart line at checkout time. Price is the catalog
// price used when the order total was computed, decoupled from later
// catalog changes.
type OrderLine struct {
	ID       string
	OrderID  string
	ItemID   string
	Quantity int
	Price    float64
}
