package session

import (
	"context"

	"github.com/dkurbatovs/shopcart/internal/models"
)

// Store persists the current session on the client. Absence of a saved
// session means the unauthenticated state.
//
// It is injected into the Manager rather than accessed as ambient state so
// tests can substitute an in-memory implementation.
type Store interface {
	// Load returns the saved session, or (nil, nil) when none is saved.
	Load(ctx context.Context) (*models.Session, error)

	// Save replaces the saved session.
	Save(ctx context.Context, s *models.Session) error

	// Clear removes the saved session. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}
