package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect selects placeholder syntax and bootstrap behavior.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unknown database driver %q", s)
	}
}

// Options describes the connection target.
type Options struct {
	Dialect  Dialect
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Path     string        // SQLite file or DSN, e.g. "file:x?mode=memory&cache=shared"
	Timeout  time.Duration // per-statement timeout; zero disables it
}

// DSN returns the driver data source name for o.
func (o Options) DSN() string {
	if o.Dialect == SQLite {
		if o.Path == "" {
			return "store.db"
		}
		return o.Path
	}
	host := o.Host
	if host == "" {
		host = "localhost"
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, o.Port),
		Path:   "/" + o.Name,
	}
	if o.User != "" {
		if o.Password != "" {
			u.User = url.UserPassword(o.User, o.Password)
		} else {
			u.User = url.User(o.User)
		}
	}
	q := url.Values{}
	if o.SSLMode != "" {
		q.Set("sslmode", o.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Target is a printable connection target without credentials.
func (o Options) Target() string {
	if o.Dialect == SQLite {
		return "sqlite:" + o.DSN()
	}
	return fmt.Sprintf("postgresql://%s/%s", net.JoinHostPort(o.Host, o.Port), o.Name)
}

// ConnectionError reports a failure to establish the database connection.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to connect to database %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatementError reports a statement rejected by the database.
type StatementError struct {
	Query string
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement failed: %v", e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Conn owns the single database connection used for the process lifetime.
type Conn struct {
	db        *sql.DB
	dialect   Dialect
	timeout   time.Duration
	closeOnce sync.Once
}

// Open connects to the database described by o and verifies the connection.
// For SQLite it also applies pragmas and the embedded bootstrap schema; the
// Postgres schema is external and left untouched.
func Open(ctx context.Context, o Options) (*Conn, error) {
	driver := "pgx"
	if o.Dialect == SQLite {
		driver = "sqlite3"
	}
	d, err := sql.Open(driver, o.DSN())
	if err != nil {
		return nil, &ConnectionError{Target: o.Target(), Err: err}
	}
	// One connection, no pool.
	d.SetMaxOpenConns(1)
	d.SetMaxIdleConns(1)
	d.SetConnMaxLifetime(0)

	if err := d.PingContext(ctx); err != nil {
		_ = d.Close()
		return nil, &ConnectionError{Target: o.Target(), Err: err}
	}
	c := &Conn{db: d, dialect: o.Dialect, timeout: o.Timeout}

	if o.Dialect == SQLite {
		// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
		_, _ = d.ExecContext(ctx, `PRAGMA journal_mode=WAL`)
		for _, p := range []string{`PRAGMA busy_timeout=5000`, `PRAGMA foreign_keys=ON`} {
			if _, err := d.ExecContext(ctx, p); err != nil {
				_ = d.Close()
				return nil, &ConnectionError{Target: o.Target(), Err: err}
			}
		}
		if err := applyMigrations(ctx, d); err != nil {
			_ = d.Close()
			return nil, &ConnectionError{Target: o.Target(), Err: err}
		}
	}
	return c, nil
}

// Dialect reports the connection's SQL dialect.
func (c *Conn) Dialect() Dialect { return c.dialect }

// Close releases the connection. It is safe to call more than once and never fails.
func (c *Conn) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		_ = c.db.Close()
	})
}

func (c *Conn) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// ExecuteUpdate runs an INSERT/UPDATE/DELETE/DDL statement and returns the rows affected.
func (c *Conn) ExecuteUpdate(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	res, err := c.db.ExecContext(ctx, c.Rebind(query), args...)
	if err != nil {
		return 0, &StatementError{Query: query, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report it; the statement itself succeeded.
		return 0, nil
	}
	return n, nil
}

// ExecuteQueryRows runs a query and returns every row with values rendered as
// strings. Columns are filled even when no row matches.
func (c *Conn) ExecuteQueryRows(ctx context.Context, query string, args ...any) (*Result, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	rows, err := c.db.QueryContext(ctx, c.Rebind(query), args...)
	if err != nil {
		return nil, &StatementError{Query: query, Err: err}
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, &StatementError{Query: query, Err: err}
	}
	res := &Result{Columns: cols}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(vals))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &StatementError{Query: query, Err: err}
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = FormatValue(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &StatementError{Query: query, Err: err}
	}
	return res, nil
}

// ExecuteQueryCount runs a query and returns how many rows it produced.
func (c *Conn) ExecuteQueryCount(ctx context.Context, query string, args ...any) (int, error) {
	n := 0
	err := c.QueryEach(ctx, query, args, func(*sql.Rows) error {
		n++
		return nil
	})
	return n, err
}

// QueryEach runs query and calls fn for every row. Rows are closed before it returns.
func (c *Conn) QueryEach(ctx context.Context, query string, args []any, fn func(*sql.Rows) error) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	rows, err := c.db.QueryContext(ctx, c.Rebind(query), args...)
	if err != nil {
		return &StatementError{Query: query, Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return &StatementError{Query: query, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &StatementError{Query: query, Err: err}
	}
	return nil
}

// Row is a single-row result whose deadline is released by Scan.
type Row struct {
	row    *sql.Row
	query  string
	cancel context.CancelFunc
}

// Scan copies the row into dest. sql.ErrNoRows is returned unwrapped.
func (r *Row) Scan(dest ...any) error {
	defer r.cancel()
	err := r.row.Scan(dest...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return &StatementError{Query: r.query, Err: err}
	}
	return err
}

// QueryRow runs a query expected to return at most one row.
func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) *Row {
	ctx, cancel := c.withTimeout(ctx)
	return &Row{row: c.db.QueryRowContext(ctx, c.Rebind(query), args...), query: query, cancel: cancel}
}
