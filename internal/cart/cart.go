package cart

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dkurbatovs/shopcart/internal/models"
	"github.com/dkurbatovs/shopcart/internal/store"
)

// Aggregate owns reading and mutating the current account's cart lines.
//
// Every mutation is a lookup-then-write against the remote store, which
// provides no atomicity between the two: two concurrent first-adds can each
// observe "no cart" and insert one, and two concurrent adds of the same item
// can both read quantity N and both write N+1, losing an increment. The
// aggregate preserves those windows unless per-account serialization is
// enabled (see WithAccountSerialization), which closes them for a single
// process only.
type Aggregate struct {
	store     store.Client
	serialize bool

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	create singleflight.Group
}

// Option customizes an Aggregate.
type Option func(*Aggregate)

// WithAccountSerialization routes every cart mutation for a given account
// through one in-process mutex, and deduplicates concurrent cart creation
// through a single-flight group. Cross-process races remain possible; only
// a store-level constraint could close those.
func WithAccountSerialization() Option {
	return func(a *Aggregate) {
		a.serialize = true
	}
}

func New(st store.Client, opts ...Option) *Aggregate {
	a := &Aggregate{
		store: st,
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LockAccount acquires the account's mutation lock when serialization is
// enabled, and is a no-op otherwise. The returned func releases it. The
// checkout orchestrator takes the same lock so cart mutations and checkouts
// for one account never interleave in-process.
func (a *Aggregate) LockAccount(accountID string) func() {
	if !a.serialize {
		return func() {}
	}

	a.mu.Lock()
	l, ok := a.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[accountID] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// GetOrCreateCart resolves the account's cart id, inserting a carts row on
// first use. The lookup-then-insert is not atomic against the store; the
// serialized mode collapses concurrent in-process creations into one.
func (a *Aggregate) GetOrCreateCart(ctx context.Context, accountID string) (string, error) {
	if !a.serialize {
		return a.getOrCreateCart(ctx, accountID)
	}

	id, err, _ := a.create.Do(accountID, func() (any, error) {
		return a.getOrCreateCart(ctx, accountID)
	})
	if err != nil {
		return "", err
	}
	return id.(string), nil
}

func (a *Aggregate) getOrCreateCart(ctx context.Context, accountID string) (string, error) {
	rows, err := a.store.Select(ctx, "carts", store.Filters{"user_id": accountID})
	if err != nil {
		return "", fmt.Errorf("cart lookup: %w", err)
	}
	if len(rows) > 0 {
		return store.String(rows[0], "id"), nil
	}

	created, err := a.store.Insert(ctx, "carts", store.Row{"user_id": accountID})
	if err != nil {
		return "", fmt.Errorf("cart create: %w", err)
	}
	return store.String(created, "id"), nil
}

// AddItem puts one unit of the item into the account's cart: a repeated add
// increments the existing line's quantity instead of inserting a duplicate
// row.
func (a *Aggregate) AddItem(ctx context.Context, accountID, itemID string) error {
	unlock := a.LockAccount(accountID)
	defer unlock()

	cartID, err := a.GetOrCreateCart(ctx, accountID)
	if err != nil {
		return err
	}

	lines, err := a.store.Select(ctx, "cart_items", store.Filters{
		"cart_id": cartID,
		"item_id": itemID,
	})
	if err != nil {
		return fmt.Errorf("cart line lookup: %w", err)
	}

	if len(lines) > 0 {
		// Read-modify-write increment; the lost-update window is part of
		// the unserialized contract.
		line := lines[0]
		quantity := store.Int(line, "quantity") + 1
		err := a.store.Update(ctx, "cart_items",
			store.Row{"quantity": quantity},
			store.Filters{"id": store.String(line, "id")})
		if err != nil {
			return fmt.Errorf("cart line update: %w", err)
		}
		return nil
	}

	_, err = a.store.Insert(ctx, "cart_items", store.Row{
		"cart_id":  cartID,
		"item_id":  itemID,
		"quantity": 1,
	})
	if err != nil {
		return fmt.Errorf("cart line insert: %w", err)
	}
	return nil
}

// List returns the account's cart lines joined with their catalog items.
// It returns an empty slice, never an error, when the account is
// unauthenticated, has no cart yet, or the store read fails. Keeping the
// read path error-free is part of the display contract.
func (a *Aggregate) List(ctx context.Context, accountID string) []models.CartLine {
	if accountID == "" {
		return nil
	}

	carts, err := a.store.Select(ctx, "carts", store.Filters{"user_id": accountID})
	if err != nil || len(carts) == 0 {
		return nil
	}
	cartID := store.String(carts[0], "id")

	rows, err := a.store.Select(ctx, "cart_items", store.Filters{"cart_id": cartID})
	if err != nil {
		return nil
	}

	lines := make([]models.CartLine, 0, len(rows))
	for _, row := range rows {
		line := models.CartLine{
			ID:       store.String(row, "id"),
			CartID:   store.String(row, "cart_id"),
			ItemID:   store.String(row, "item_id"),
			Quantity: store.Int(row, "quantity"),
		}

		items, err := a.store.Select(ctx, "items", store.Filters{"id": line.ItemID})
		if err == nil && len(items) > 0 {
			item := items[0]
			line.Item = &models.Item{
				ID:          store.String(item, "id"),
				Name:        store.String(item, "name"),
				Description: store.String(item, "description"),
				Price:       store.Float(item, "price"),
				ImageURL:    store.String(item, "image_url"),
			}
		}

		lines = append(lines, line)
	}
	return lines
}

// Clear deletes all lines of the cart. Clearing an already-empty cart is a
// no-op that succeeds.
func (a *Aggregate) Clear(ctx context.Context, cartID string) error {
	if err := a.store.Delete(ctx, "cart_items", store.Filters{"cart_id": cartID}); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}
