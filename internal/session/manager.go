package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkurbatovs/shopcart/internal/common"
	"github.com/dkurbatovs/shopcart/internal/cryptox"
	"github.com/dkurbatovs/shopcart/internal/logging"
	"github.com/dkurbatovs/shopcart/internal/models"
	"github.com/dkurbatovs/shopcart/internal/store"
)

// DefaultTokenTTL is the validity period embedded into issued tokens.
const DefaultTokenTTL = 24 * time.Hour

// Manager owns registration, login, logout, and the locally persisted
// identity. The single-session policy hangs on the users row's token column:
// a non-null value there means a session is outstanding somewhere, and login
// refuses to issue a second one.
type Manager struct {
	store    store.Client
	local    Store
	log      logging.Logger
	tokenTTL time.Duration
}

func NewManager(st store.Client, local Store, log logging.Logger, tokenTTL time.Duration) *Manager {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Manager{store: st, local: local, log: log, tokenTTL: tokenTTL}
}

// Register digests the password and inserts a users row. A uniqueness
// conflict on username maps to common.ErrDuplicateUsername; any other store
// failure surfaces as-is.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	digest := cryptox.PasswordDigest(password)

	_, err := m.store.Insert(ctx, "users", store.Row{
		"username": username,
		"password": digest,
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return common.ErrDuplicateUsername
		}
		return fmt.Errorf("register: %w", err)
	}

	m.log.Info(ctx, "account registered", "username", username)
	return nil
}

// Login looks the account up by exact (username, digest) match, enforces the
// single-session policy, writes a fresh token onto the row, and persists the
// session locally.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, error) {
	digest := cryptox.PasswordDigest(password)

	rows, err := m.store.Select(ctx, "users", store.Filters{
		"username": username,
		"password": digest,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if len(rows) == 0 {
		return nil, common.ErrInvalidCredentials
	}

	account := rows[0]
	if store.String(account, "token") != "" {
		return nil, common.ErrAlreadyLoggedIn
	}

	accountID := store.String(account, "id")

	token, expiresAt, err := GenerateToken(accountID, m.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login: token generation: %w", err)
	}

	// Lookup-then-update: two concurrent logins can both observe an empty
	// token and both write one. The store offers no conditional update, so
	// the window stays open; last writer wins.
	if err := m.store.Update(ctx, "users", store.Row{"token": token}, store.Filters{"id": accountID}); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := &models.Session{
		Token:     token,
		AccountID: accountID,
		Username:  username,
		ExpiresAt: expiresAt,
	}
	if err := m.local.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: saving session: %w", err)
	}

	m.log.Info(ctx, "logged in", "username", username)
	return sess, nil
}

// Logout clears the token on the users row on a best-effort basis and then
// always erases the local session. A failed remote clear must not block the
// local sign-out; it leaves the account unable to log in again until the
// stale token is cleared out of band.
func (m *Manager) Logout(ctx context.Context) error {
	sess, err := m.local.Load(ctx)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if sess != nil {
		err := m.store.Update(ctx, "users", store.Row{"token": nil}, store.Filters{"id": sess.AccountID})
		if err != nil {
			m.log.Warn(ctx, "failed to clear remote token", "account_id", sess.AccountID, "error", err)
		}
	}

	if err := m.local.Clear(ctx); err != nil {
		return fmt.Errorf("logout: clearing session: %w", err)
	}

	m.log.Info(ctx, "logged out")
	return nil
}

// Current returns the locally persisted session, or nil when
// unauthenticated. It never contacts the store.
func (m *Manager) Current(ctx context.Context) (*models.Session, error) {
	return m.local.Load(ctx)
}
