package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryInsertGeneratesID(t *testing.T) {
	m := NewInMemory()

	row, err := m.Insert(context.Background(), "items", Row{"name": "mouse", "price": 19.99})
	require.NoError(t, err)
	require.NotEmpty(t, String(row, "id"))
	require.False(t, Time(row, "created_at").IsZero())
}

func TestInMemorySelectEqualityFilters(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	m.Seed("users",
		Row{"username": "alice", "password": "d1"},
		Row{"username": "bob", "password": "d2"},
	)

	rows, err := m.Select(ctx, "users", Filters{"username": "alice", "password": "d1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "alice", String(rows[0], "username"))

	rows, err = m.Select(ctx, "users", Filters{"username": "alice", "password": "wrong"})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestInMemoryNilFilterMatchesNull(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	m.Seed("users",
		Row{"username": "alice", "token": "tok"},
		Row{"username": "bob", "token": nil},
	)

	rows, err := m.Select(ctx, "users", Filters{"token": nil})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "bob", String(rows[0], "username"))
}

func TestInMemoryUniqueViolation(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory(WithUniqueColumn("users", "username"))

	_, err := m.Insert(ctx, "users", Row{"username": "alice"})
	require.NoError(t, err)

	_, err = m.Insert(ctx, "users", Row{"username": "alice"})
	require.ErrorIs(t, err, ErrUniqueViolation)
}

func TestInMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	inserted, err := m.Insert(ctx, "users", Row{"username": "alice", "token": nil})
	require.NoError(t, err)

	err = m.Update(ctx, "users", Row{"token": "tok"}, Filters{"id": String(inserted, "id")})
	require.NoError(t, err)

	rows, err := m.Select(ctx, "users", Filters{"username": "alice"})
	require.NoError(t, err)
	require.Equal(t, "tok", String(rows[0], "token"))
}

func TestInMemoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	m.Seed("cart_items", Row{"cart_id": "c1"}, Row{"cart_id": "c1"}, Row{"cart_id": "c2"})

	require.NoError(t, m.Delete(ctx, "cart_items", Filters{"cart_id": "c1"}))
	require.Equal(t, 0, m.CountRows("cart_items", Filters{"cart_id": "c1"}))
	require.Equal(t, 1, m.CountRows("cart_items", Filters{"cart_id": "c2"}))

	// second delete matches nothing and still succeeds
	require.NoError(t, m.Delete(ctx, "cart_items", Filters{"cart_id": "c1"}))
}

func TestInMemoryOrderBy(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	base := time.Now()
	m.Seed("orders",
		Row{"total": 1.0, "created_at": base.Add(1 * time.Minute)},
		Row{"total": 2.0, "created_at": base.Add(3 * time.Minute)},
		Row{"total": 3.0, "created_at": base.Add(2 * time.Minute)},
	)

	rows, err := m.Select(ctx, "orders", nil, OrderBy("created_at", true))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, 2.0, Float(rows[0], "total"))
	require.Equal(t, 3.0, Float(rows[1], "total"))
	require.Equal(t, 1.0, Float(rows[2], "total"))
}

func TestInMemoryIntercept(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	boom := errors.New("boom")

	m.SetIntercept(func(op Op, table string) error {
		if op == OpUpdate && table == "users" {
			return boom
		}
		return nil
	})

	_, err := m.Insert(ctx, "users", Row{"username": "alice"})
	require.NoError(t, err)

	err = m.Update(ctx, "users", Row{"token": "t"}, Filters{"username": "alice"})
	require.ErrorIs(t, err, boom)

	m.SetIntercept(nil)
	err = m.Update(ctx, "users", Row{"token": "t"}, Filters{"username": "alice"})
	require.NoError(t, err)
}
