package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Op names a store operation for the Intercept hook.
type Op string

const (
	OpSelect Op = "select"
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// InterceptFunc runs before an operation touches the tables. Returning an
// error aborts the operation with that error; blocking inside the function
// delays it. Tests use this to inject failures and force interleavings.
type InterceptFunc func(op Op, table string) error

// InMemory is a Client backed by in-process maps. It mimics the remote
// store's observable behavior: generated ids, created_at stamping,
// configurable uniqueness constraints, and equality-only filters.
type InMemory struct {
	mu        sync.Mutex
	tables    map[string][]Row
	unique    map[string][]string
	intercept InterceptFunc
}

// InMemoryOption customizes an InMemory store.
type InMemoryOption func(*InMemory)

// WithUniqueColumn declares a uniqueness constraint on table.column,
// enforced on Insert.
func WithUniqueColumn(table, column string) InMemoryOption {
	return func(m *InMemory) {
		m.unique[table] = append(m.unique[table], column)
	}
}

func NewInMemory(opts ...InMemoryOption) *InMemory {
	m := &InMemory{
		tables: make(map[string][]Row),
		unique: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetIntercept installs (or clears, with nil) the pre-operation hook.
func (m *InMemory) SetIntercept(fn InterceptFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intercept = fn
}

func (m *InMemory) runIntercept(op Op, table string) error {
	m.mu.Lock()
	fn := m.intercept
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(op, table)
}

// Seed inserts rows directly, bypassing the intercept hook. Intended for
// test fixtures.
func (m *InMemory) Seed(table string, rows ...Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.tables[table] = append(m.tables[table], prepareRow(r))
	}
}

func prepareRow(r Row) Row {
	row := copyRow(r)
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = time.Now().UTC()
	}
	return row
}

func copyRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// normalize maps equivalent numeric types onto one representation so filter
// comparison behaves like SQL equality.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case []byte:
		return string(t)
	}
	return v
}

func matches(row Row, filters Filters) bool {
	for k, want := range filters {
		got, ok := row[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || got == nil {
			return false
		}
		if normalize(got) != normalize(want) {
			return false
		}
	}
	return true
}

func (m *InMemory) Select(ctx context.Context, table string, filters Filters, opts ...SelectOption) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := m.runIntercept(OpSelect, table); err != nil {
		return nil, err
	}

	var o SelectOptions
	for _, opt := range opts {
		opt(&o)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := []Row{}
	for _, row := range m.tables[table] {
		if matches(row, filters) {
			result = append(result, copyRow(row))
		}
	}

	if o.OrderColumn != "" {
		col := o.OrderColumn
		sort.SliceStable(result, func(i, j int) bool {
			less := lessValue(result[i][col], result[j][col])
			if o.Descending {
				return lessValue(result[j][col], result[i][col])
			}
			return less
		})
	}

	return result, nil
}

func lessValue(a, b any) bool {
	switch av := normalize(a).(type) {
	case int64:
		if bv, ok := normalize(b).(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := normalize(b).(float64); ok {
			return av < bv
		}
	case string:
		if bv, ok := normalize(b).(string); ok {
			return av < bv
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	}
	return false
}

func (m *InMemory) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := m.runIntercept(OpInsert, table); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, col := range m.unique[table] {
		want, ok := row[col]
		if !ok || want == nil {
			continue
		}
		for _, existing := range m.tables[table] {
			if existing[col] != nil && normalize(existing[col]) == normalize(want) {
				return nil, fmt.Errorf("%w: %s.%s", ErrUniqueViolation, table, col)
			}
		}
	}

	stored := prepareRow(row)
	m.tables[table] = append(m.tables[table], stored)
	return copyRow(stored), nil
}

func (m *InMemory) Update(ctx context.Context, table string, patch Row, filters Filters) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := m.runIntercept(OpUpdate, table); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.tables[table] {
		if !matches(row, filters) {
			continue
		}
		for k, v := range patch {
			row[k] = v
		}
	}
	return nil
}

func (m *InMemory) Delete(ctx context.Context, table string, filters Filters) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := m.runIntercept(OpDelete, table); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tables[table][:0]
	for _, row := range m.tables[table] {
		if !matches(row, filters) {
			kept = append(kept, row)
		}
	}
	m.tables[table] = kept
	return nil
}

// CountRows reports how many rows of the table match the filters. Test
// helper; not part of the Client contract.
func (m *InMemory) CountRows(table string, filters Filters) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, row := range m.tables[table] {
		if matches(row, filters) {
			n++
		}
	}
	return n
}
