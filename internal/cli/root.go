package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func (a *App) getStatus(ctx context.Context) string {
	if sess := a.currentSession(ctx); sess != nil {
		return fmt.Sprintf("(%s)", sess.Username)
	}
	return ""
}

// Root runs the interactive command loop until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to ShopCart (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	a.runLoop(ctx, scanner)
}

func (a *App) runLoop(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Fprintf(a.out, "shop %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: items, add <n>, cart, orders, checkout, logout, exit")
			} else {
				printlnFn("Available commands: register, login, items, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)

		case "items", "i":
			a.items(ctx)
		case "add":
			a.add(ctx, args)
		case "cart":
			a.viewCart(ctx)
		case "orders":
			a.viewOrders(ctx)
		case "checkout":
			a.doCheckout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
