package store

import "context"

// Filters is a set of equality conditions applied to a table operation.
// A nil value matches SQL NULL.
type Filters map[string]any

// Row is a generic table row keyed by column name.
type Row map[string]any

// SelectOptions carries the optional parts of a Select call. Results are
// unordered unless OrderBy is set.
type SelectOptions struct {
	OrderColumn string
	Descending  bool
}

// SelectOption customizes a Select call.
type SelectOption func(*SelectOptions)

// OrderBy requests results sorted by the given column.
func OrderBy(column string, descending bool) SelectOption {
	return func(o *SelectOptions) {
		o.OrderColumn = column
		o.Descending = descending
	}
}

// Client is a generic accessor for a remote row-oriented store. Only
// equality filters are supported, every call is a single remote round trip,
// and no cross-row transaction primitive is available: callers that issue a
// sequence of dependent writes get no atomicity across them.
type Client interface {
	// Select returns the rows matching the filters, or an empty slice.
	Select(ctx context.Context, table string, filters Filters, opts ...SelectOption) ([]Row, error)

	// Insert stores a new row and returns it with generated columns (id,
	// created_at) filled in. A uniqueness conflict is reported as an error
	// matching ErrUniqueViolation.
	Insert(ctx context.Context, table string, row Row) (Row, error)

	// Update applies patch to every row matching the filters. Last writer
	// wins; there is no optimistic-concurrency token.
	Update(ctx context.Context, table string, patch Row, filters Filters) error

	// Delete removes every row matching the filters. Deleting zero rows is
	// not an error.
	Delete(ctx context.Context, table string, filters Filters) error
}
