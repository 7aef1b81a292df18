package checkout

import (
	"context"
	"fmt"

	"github.com/dkurbatovs/shopcart/internal/cart"
	"github.com/dkurbatovs/shopcart/internal/common"
	"github.com/dkurbatovs/shopcart/internal/logging"
	"github.com/dkurbatovs/shopcart/internal/models"
	"github.com/dkurbatovs/shopcart/internal/store"
)

// State names one step of the checkout saga. The sequence is ordered and
// non-atomic: the store offers no cross-row transaction to the client, so a
// failure mid-sequence leaves every earlier write in place. No compensation
// is attempted.
type State string

const (
	StateCollecting   State = "collecting"
	StateTotaling     State = "totaling"
	StateOrderCreated State = "order_created"
	StateLinesWritten State = "lines_written"
	StateCartCleared  State = "cart_cleared"
)

// Identity supplies the current authenticated session, if any.
type Identity interface {
	Current(ctx context.Context) (*models.Session, error)
}

// Orchestrator drives the cart-to-order commit sequence.
type Orchestrator struct {
	store    store.Client
	cart     *cart.Aggregate
	identity Identity
	log      logging.Logger
}

func NewOrchestrator(st store.Client, c *cart.Aggregate, id Identity, log logging.Logger) *Orchestrator {
	return &Orchestrator{store: st, cart: c, identity: id, log: log}
}

// Checkout turns the current account's cart into an order and returns the
// new order id.
//
// Steps, in order: collect cart lines (fail common.ErrEmptyCart before any
// write), total them at current catalog prices, insert the orders row,
// insert one order_items row per line with the price used for the total, and
// finally clear the cart — re-resolved by account, not by the cart id
// captured at collection time. A store failure at any step aborts with no
// rollback of earlier writes, and the returned error carries no marker of
// which step failed.
func (o *Orchestrator) Checkout(ctx context.Context) (string, error) {
	sess, err := o.identity.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	if sess == nil {
		return "", common.ErrUnauthenticated
	}
	accountID := sess.AccountID

	unlock := o.cart.LockAccount(accountID)
	defer unlock()

	var (
		lines   []models.CartLine
		total   float64
		orderID string
	)

	for st := StateCollecting; ; {
		switch st {
		case StateCollecting:
			lines = o.cart.List(ctx, accountID)
			if len(lines) == 0 {
				return "", common.ErrEmptyCart
			}
			st = StateTotaling

		case StateTotaling:
			total = totalOf(lines)
			st = StateOrderCreated

		case StateOrderCreated:
			row, err := o.store.Insert(ctx, "orders", store.Row{
				"user_id": accountID,
				"total":   total,
			})
			if err != nil {
				return "", fmt.Errorf("checkout: %w", err)
			}
			orderID = store.String(row, "id")
			st = StateLinesWritten

		case StateLinesWritten:
			for _, line := range lines {
				_, err := o.store.Insert(ctx, "order_items", store.Row{
					"order_id": orderID,
					"item_id":  line.ItemID,
					"quantity": line.Quantity,
					"price":    linePrice(line),
				})
				if err != nil {
					// The orders row already exists; it stays, lineless.
					return "", fmt.Errorf("checkout: %w", err)
				}
			}
			st = StateCartCleared

		case StateCartCleared:
			carts, err := o.store.Select(ctx, "carts", store.Filters{"user_id": accountID})
			if err != nil {
				return "", fmt.Errorf("checkout: %w", err)
			}
			if len(carts) > 0 {
				if err := o.cart.Clear(ctx, store.String(carts[0], "id")); err != nil {
					return "", fmt.Errorf("checkout: %w", err)
				}
			}

			o.log.Info(ctx, "checkout complete", "order_id", orderID, "total", total, "lines", len(lines))
			return orderID, nil
		}
	}
}

// ListOrders returns the account's order history, newest first. It returns
// an empty slice, never an error, when unauthenticated or when the store
// read fails.
func (o *Orchestrator) ListOrders(ctx context.Context) []models.Order {
	sess, err := o.identity.Current(ctx)
	if err != nil || sess == nil {
		return nil
	}

	rows, err := o.store.Select(ctx, "orders",
		store.Filters{"user_id": sess.AccountID},
		store.OrderBy("created_at", true))
	if err != nil {
		return nil
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, models.Order{
			ID:        store.String(row, "id"),
			AccountID: store.String(row, "user_id"),
			Total:     store.Float(row, "total"),
			CreatedAt: store.Time(row, "created_at"),
		})
	}
	return orders
}

// totalOf sums price×quantity over the lines at the prices their catalog
// joins currently report. A line whose item is missing contributes zero.
func totalOf(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += linePrice(line) * float64(line.Quantity)
	}
	return total
}

func linePrice(line models.CartLine) float64 {
	if line.Item == nil {
		return 0
	}
	return line.Item.Price
}
