package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Register modernc SQLite driver with database/sql.
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Accessor opens one connection per logical operation against the configured database.
type Accessor struct {
	cfg     *Config
	counter *ConnCounter
}

// Conn is a single physical connection. Callers must Close it on every path; prefer
// Accessor.WithConn which does that for them.
type Conn struct {
	*sql.Conn
	db *sql.DB
}

// NewAccessor creates an accessor that records every successful open on counter.
func NewAccessor(cfg *Config, counter *ConnCounter) *Accessor {
	if cfg == nil {
		cfg = &Config{}
	}
	if counter == nil {
		counter = NewConnCounter()
	}
	return &Accessor{cfg: cfg, counter: counter}
}

// Counter returns the connection counter shared with the accessor.
func (a *Accessor) Counter() *ConnCounter {
	return a.counter
}

// Open establishes a new physical connection and increments the counter.
func (a *Accessor) Open(ctx context.Context) (*Conn, error) {
	if a.cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: database path is required")
	}
	db, err := sql.Open(driverName, buildDSN(a.cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: connect %s: %w", a.cfg.Path, err)
	}
	// modernc defers opening the file until first use; force it so open errors surface here.
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: connect %s: %w", a.cfg.Path, err)
	}
	a.counter.Inc()
	return &Conn{Conn: conn, db: db}, nil
}

// Close releases the connection and its handle.
func (c *Conn) Close() error {
	return errors.Join(c.Conn.Close(), c.db.Close())
}

// WithConn opens a connection, runs fn and closes the connection on every exit path.
func (a *Accessor) WithConn(ctx context.Context, fn func(*Conn) error) (err error) {
	conn, err := a.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sqlite: close connection: %w", cerr)
		}
	}()
	return fn(conn)
}

func buildDSN(cfg *Config) string {
	timeout := cfg.BusyTimeout
	if timeout <= 0 {
		timeout = defaultBusyTimeout
	}
	pragmas := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", timeout.Milliseconds()),
		"_pragma=journal_mode(WAL)",
		"_pragma=foreign_keys(ON)",
	}
	path := cfg.Path
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + "?" + strings.Join(pragmas, "&")
}
