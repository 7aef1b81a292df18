package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckIdents(t *testing.T) {
	tests := []struct {
		name    string
		ident   string
		wantErr bool
	}{
		{"plain", "users", false},
		{"underscore", "cart_items", false},
		{"leading underscore", "_tmp", false},
		{"digits", "t2", false},
		{"uppercase", "Users", true},
		{"space", "users ", true},
		{"quote", `users"`, true},
		{"injection", "users; DROP TABLE users", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkIdents(tt.ident)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadIdentifier)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWhereClause(t *testing.T) {
	where, args, err := whereClause(Filters{"b": 2, "a": 1}, 1)
	require.NoError(t, err)
	require.Equal(t, " WHERE a = $1 AND b = $2", where)
	require.Equal(t, []any{1, 2}, args)
}

func TestWhereClauseNilRendersIsNull(t *testing.T) {
	where, args, err := whereClause(Filters{"token": nil, "username": "alice"}, 1)
	require.NoError(t, err)
	require.Equal(t, " WHERE token IS NULL AND username = $1", where)
	require.Equal(t, []any{"alice"}, args)
}

func TestWhereClauseEmpty(t *testing.T) {
	where, args, err := whereClause(nil, 1)
	require.NoError(t, err)
	require.Empty(t, where)
	require.Empty(t, args)
}

func TestWhereClauseBadColumn(t *testing.T) {
	_, _, err := whereClause(Filters{"bad col": 1}, 1)
	require.ErrorIs(t, err, ErrBadIdentifier)
}
