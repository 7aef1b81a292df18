package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dkurbatovs/shopcart/internal/store/migrations"
)

// uniqueViolationCode is the SQLSTATE the backend reports on a uniqueness
// conflict.
const uniqueViolationCode = "23505"

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Postgres implements Client over a Postgres backend. Each call issues
// exactly one statement; no transaction is ever opened, matching the
// no-client-visible-transaction contract of the store.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool for the given DSN.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// RunMigrations applies the embedded schema migrations.
func (p *Postgres) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, p.db, ".")
}

func checkIdents(names ...string) error {
	for _, n := range names {
		if !identRe.MatchString(n) {
			return fmt.Errorf("%w: %q", ErrBadIdentifier, n)
		}
	}
	return nil
}

// sortedKeys returns map keys in a stable order so generated SQL is
// deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// whereClause renders equality filters starting at placeholder $next.
// A nil filter value renders as IS NULL.
func whereClause(filters Filters, next int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	if err := checkIdents(sortedKeys(filters)...); err != nil {
		return "", nil, err
	}

	var conds []string
	var args []any
	for _, k := range sortedKeys(filters) {
		v := filters[k]
		if v == nil {
			conds = append(conds, fmt.Sprintf("%s IS NULL", k))
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", k, next))
		args = append(args, v)
		next++
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (p *Postgres) Select(ctx context.Context, table string, filters Filters, opts ...SelectOption) ([]Row, error) {
	if err := checkIdents(table); err != nil {
		return nil, err
	}

	var o SelectOptions
	for _, opt := range opts {
		opt(&o)
	}

	where, args, err := whereClause(filters, 1)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + table + where
	if o.OrderColumn != "" {
		if err := checkIdents(o.OrderColumn); err != nil {
			return nil, err
		}
		query += " ORDER BY " + o.OrderColumn
		if o.Descending {
			query += " DESC"
		}
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return result, nil
}

func (p *Postgres) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if err := checkIdents(table); err != nil {
		return nil, err
	}
	if err := checkIdents(sortedKeys(row)...); err != nil {
		return nil, err
	}

	cols := sortedKeys(row)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	inserted, err := scanRows(rows)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("%w: insert returned no row", ErrStore)
	}
	return inserted[0], nil
}

func (p *Postgres) Update(ctx context.Context, table string, patch Row, filters Filters) error {
	if err := checkIdents(table); err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("%w: empty patch", ErrStore)
	}
	if err := checkIdents(sortedKeys(patch)...); err != nil {
		return err
	}

	var sets []string
	var args []any
	next := 1
	for _, k := range sortedKeys(patch) {
		sets = append(sets, fmt.Sprintf("%s = $%d", k, next))
		args = append(args, patch[k])
		next++
	}

	where, whereArgs, err := whereClause(filters, next)
	if err != nil {
		return err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), where)
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, table string, filters Filters) error {
	if err := checkIdents(table); err != nil {
		return err
	}

	where, args, err := whereClause(filters, 1)
	if err != nil {
		return err
	}

	query := "DELETE FROM " + table + where
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// scanRows converts sql rows into generic Rows keyed by column name.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func wrapStoreErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
