package cli

import (
	"context"
	"errors"

	"github.com/dkurbatovs/shopcart/internal/common"
	"github.com/dkurbatovs/shopcart/internal/ui"
)

func (a *App) register(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.notifier.Notify("Registration failed", ui.SeverityError)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.notifier.Notify("Registration failed", ui.SeverityError)
		return
	}

	if err := a.sessions.Register(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			a.notifier.Notify("Username already exists", ui.SeverityError)
			return
		}
		a.notifier.Notify("Registration failed", ui.SeverityError)
		return
	}

	a.notifier.Notify("Registration successful! You can now login.", ui.SeverityInfo)
}

func (a *App) login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.notifier.Notify("Login failed", ui.SeverityError)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.notifier.Notify("Login failed", ui.SeverityError)
		return
	}

	sess, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			a.notifier.Notify("Invalid username/password", ui.SeverityError)
		case errors.Is(err, common.ErrAlreadyLoggedIn):
			a.notifier.Notify("You cannot login on another device.", ui.SeverityError)
		default:
			a.notifier.Notify("Login failed", ui.SeverityError)
		}
		return
	}

	a.notifier.Notify("Welcome, "+sess.Username+"!", ui.SeverityInfo)
}

func (a *App) logout(ctx context.Context) {
	if err := a.sessions.Logout(ctx); err != nil {
		a.notifier.Notify("Logout failed", ui.SeverityError)
		return
	}
	a.notifier.Notify("Logged out", ui.SeverityInfo)
}
