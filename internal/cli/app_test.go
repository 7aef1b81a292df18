package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkurbatovs/shopcart/internal/cart"
	"github.com/dkurbatovs/shopcart/internal/catalog"
	"github.com/dkurbatovs/shopcart/internal/checkout"
	"github.com/dkurbatovs/shopcart/internal/config"
	"github.com/dkurbatovs/shopcart/internal/logging"
	"github.com/dkurbatovs/shopcart/internal/session"
	"github.com/dkurbatovs/shopcart/internal/store"
	"github.com/dkurbatovs/shopcart/internal/ui"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp wires an App over in-memory collaborators, with one registered
// and logged-in account.
func newTestApp(t *testing.T) (*App, *store.InMemory, *ui.Recorder) {
	t.Helper()
	ctx := context.Background()

	remote := store.NewInMemory(store.WithUniqueColumn("users", "username"))
	sessions := session.NewManager(remote, session.NewMemoryStore(), testLogger(), 0)
	carts := cart.New(remote, cart.WithAccountSerialization())
	rec := &ui.Recorder{}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	app := &App{
		config:   cfg,
		sessions: sessions,
		catalog:  catalog.NewReader(remote),
		cart:     carts,
		checkout: checkout.NewOrchestrator(remote, carts, sessions, testLogger()),
		notifier: rec,
		log:      testLogger(),
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      io.Discard,
	}

	require.NoError(t, sessions.Register(ctx, "alice", "secret"))
	_, err := sessions.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	return app, remote, rec
}

func lastCall(t *testing.T, rec *ui.Recorder) ui.Recorded {
	t.Helper()
	require.NotEmpty(t, rec.Calls)
	return rec.Calls[len(rec.Calls)-1]
}

func TestViewCartEmpty(t *testing.T) {
	app, _, rec := newTestApp(t)

	app.viewCart(context.Background())

	call := lastCall(t, rec)
	require.True(t, call.Blocking)
	require.Equal(t, "Your cart is empty", call.Message)
}

func TestAddNotifiesWithItemName(t *testing.T) {
	ctx := context.Background()
	app, remote, rec := newTestApp(t)
	remote.Seed("items", store.Row{"name": "mouse", "price": 19.99})

	app.items(ctx)
	app.add(ctx, []string{"1"})

	call := lastCall(t, rec)
	require.Equal(t, ui.SeverityInfo, call.Severity)
	require.Equal(t, "mouse added to cart!", call.Message)
}

func TestViewCartListsLines(t *testing.T) {
	ctx := context.Background()
	app, remote, rec := newTestApp(t)
	remote.Seed("items", store.Row{"name": "mouse", "price": 19.99})

	app.items(ctx)
	app.add(ctx, []string{"1"})
	app.add(ctx, []string{"1"})
	app.viewCart(ctx)

	call := lastCall(t, rec)
	require.True(t, call.Blocking)
	require.Contains(t, call.Message, "Cart Items:")
	require.Contains(t, call.Message, "• mouse (x2)")
}

func TestCheckoutEmptyCartNotifiesError(t *testing.T) {
	app, _, rec := newTestApp(t)

	app.doCheckout(context.Background())

	call := lastCall(t, rec)
	require.Equal(t, ui.SeverityError, call.Severity)
	require.Equal(t, "Cart is empty", call.Message)
}

func TestCheckoutSuccessConfirmsWithShortOrderID(t *testing.T) {
	ctx := context.Background()
	app, remote, rec := newTestApp(t)
	remote.Seed("items", store.Row{"name": "mouse", "price": 19.99})

	app.items(ctx)
	app.add(ctx, []string{"1"})
	app.doCheckout(ctx)

	require.GreaterOrEqual(t, len(rec.Calls), 2)
	notify := rec.Calls[len(rec.Calls)-2]
	confirm := rec.Calls[len(rec.Calls)-1]

	require.Equal(t, "Order successful!", notify.Message)
	require.Equal(t, ui.SeverityInfo, notify.Severity)

	require.True(t, confirm.Blocking)
	require.Contains(t, confirm.Message, "Order placed successfully!")
	require.Contains(t, confirm.Message, "Order ID: ")
}

func TestViewOrdersShowsHistory(t *testing.T) {
	ctx := context.Background()
	app, remote, rec := newTestApp(t)
	remote.Seed("items", store.Row{"name": "mouse", "price": 19.99})

	app.items(ctx)
	app.add(ctx, []string{"1"})
	app.doCheckout(ctx)
	app.viewOrders(ctx)

	call := lastCall(t, rec)
	require.True(t, call.Blocking)
	require.Contains(t, call.Message, "Order History:")
	require.Contains(t, call.Message, "Order #")
	require.Contains(t, call.Message, "- $19.99")
}

func TestViewOrdersNoneFound(t *testing.T) {
	app, _, rec := newTestApp(t)

	app.viewOrders(context.Background())

	call := lastCall(t, rec)
	require.True(t, call.Blocking)
	require.Equal(t, "No orders found", call.Message)
}

func TestCartOpsRequireSession(t *testing.T) {
	ctx := context.Background()
	app, _, rec := newTestApp(t)
	require.NoError(t, app.sessions.Logout(ctx))

	app.add(ctx, []string{"1"})
	call := lastCall(t, rec)
	require.Equal(t, ui.SeverityError, call.Severity)
	require.Equal(t, "Not authenticated", call.Message)

	app.doCheckout(ctx)
	call = lastCall(t, rec)
	require.Equal(t, "Not authenticated", call.Message)
}

func TestShortID(t *testing.T) {
	require.Equal(t, "12345678", shortID("1234567890ab"))
	require.Equal(t, "abc", shortID("abc"))
}

func TestRunLoopUnknownCommandAndExit(t *testing.T) {
	app, _, _ := newTestApp(t)

	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader("bogus\nexit\n"))
	app.runLoop(context.Background(), scanner)

	require.Contains(t, lines, "Unknown command: bogus")
	require.Contains(t, lines, "Bye!")
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
