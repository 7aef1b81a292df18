package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dkurbatovs/shopcart/internal/common"
	"github.com/dkurbatovs/shopcart/internal/ui"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// items lists the catalog and remembers it so "add <n>" can index into it.
func (a *App) items(ctx context.Context) {
	items, err := a.catalog.List(ctx)
	if err != nil {
		a.notifier.Notify("Failed to load items", ui.SeverityError)
		return
	}
	a.lastItems = items

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items available")
		return
	}
	for i, item := range items {
		fmt.Fprintf(a.out, "%2d. %s — $%.2f\n", i+1, item.Name, item.Price)
		if item.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", item.Description)
		}
	}
}

// add puts one unit of the n-th listed item into the cart.
func (a *App) add(ctx context.Context, args []string) {
	sess := a.currentSession(ctx)
	if sess == nil {
		a.notifier.Notify("Not authenticated", ui.SeverityError)
		return
	}

	if len(a.lastItems) == 0 {
		a.items(ctx)
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: add <item number>")
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.lastItems) {
		fmt.Fprintln(a.out, "Usage: add <item number>")
		return
	}
	item := a.lastItems[n-1]

	if err := a.cart.AddItem(ctx, sess.AccountID, item.ID); err != nil {
		a.notifier.Notify("Failed to add to cart", ui.SeverityError)
		return
	}

	a.notifier.Notify(item.Name+" added to cart!", ui.SeverityInfo)

	count := 0
	for _, line := range a.cart.List(ctx, sess.AccountID) {
		count += line.Quantity
	}
	fmt.Fprintf(a.out, "Cart: %d item(s)\n", count)
}

// viewCart shows the cart contents in a blocking dialog.
func (a *App) viewCart(ctx context.Context) {
	sess := a.currentSession(ctx)
	if sess == nil {
		a.notifier.Notify("Not authenticated", ui.SeverityError)
		return
	}

	lines := a.cart.List(ctx, sess.AccountID)
	if len(lines) == 0 {
		a.notifier.PromptBlockingMessage("Your cart is empty")
		return
	}

	var b strings.Builder
	b.WriteString("Cart Items:")
	for _, line := range lines {
		name := line.ItemID
		if line.Item != nil {
			name = line.Item.Name
		}
		fmt.Fprintf(&b, "\n• %s (x%d)", name, line.Quantity)
	}
	a.notifier.PromptBlockingMessage(b.String())
}

// viewOrders shows the order history in a blocking dialog, newest first.
func (a *App) viewOrders(ctx context.Context) {
	if !a.isLoggedIn(ctx) {
		a.notifier.Notify("Not authenticated", ui.SeverityError)
		return
	}

	orders := a.checkout.ListOrders(ctx)
	if len(orders) == 0 {
		a.notifier.PromptBlockingMessage("No orders found")
		return
	}

	var b strings.Builder
	b.WriteString("Order History:")
	for _, o := range orders {
		fmt.Fprintf(&b, "\nOrder #%s - $%.2f", shortID(o.ID), o.Total)
	}
	a.notifier.PromptBlockingMessage(b.String())
}

// doCheckout runs the checkout saga and reports the outcome.
func (a *App) doCheckout(ctx context.Context) {
	orderID, err := a.checkout.Checkout(ctx)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthenticated):
			a.notifier.Notify("Not authenticated", ui.SeverityError)
		case errors.Is(err, common.ErrEmptyCart):
			a.notifier.Notify("Cart is empty", ui.SeverityError)
		default:
			a.notifier.Notify("Checkout failed", ui.SeverityError)
		}
		return
	}

	a.notifier.Notify("Order successful!", ui.SeverityInfo)
	a.notifier.PromptBlockingMessage("Order placed successfully!\nOrder ID: " + shortID(orderID))
}
