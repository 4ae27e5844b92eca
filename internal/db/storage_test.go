// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/noxera-service/internal/logging"
)

var errBeginRefused = errors.New("begin refused")

// beginFailsDriver refuses every transaction and counts statements that run
// in autocommit mode.
type beginFailsDriver struct {
	execs *atomic.Int32
}

func (d beginFailsDriver) Open(string) (driver.Conn, error) {
	return beginFailsConn(d), nil
}

type beginFailsConn struct {
	execs *atomic.Int32
}

func (c beginFailsConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c beginFailsConn) Close() error {
	return nil
}

func (c beginFailsConn) Begin() (driver.Tx, error) {
	return nil, errBeginRefused
}

func (c beginFailsConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return nil, errBeginRefused
}

func (c beginFailsConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	c.execs.Add(1)
	return driver.RowsAffected(1), nil
}

var beginFailsExecs atomic.Int32

func init() {
	sql.Register("noxera-begin-fails", beginFailsDriver{execs: &beginFailsExecs})
}

func newBeginFailsClient(t *testing.T) *DBClient {
	t.Helper()

	conn, err := sql.Open("noxera-begin-fails", "")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &DBClient{db: conn, dbRunner: conn, logger: logging.NewNoopLogger()}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name           string
		page           int64
		size           int64
		expectedPage   uint64
		expectedSize   uint64
		expectedOffset uint64
	}{
		{name: "defaults", page: 0, size: 0, expectedPage: 1, expectedSize: 20, expectedOffset: 0},
		{name: "negative values", page: -3, size: -1, expectedPage: 1, expectedSize: 20, expectedOffset: 0},
		{name: "third page", page: 3, size: 10, expectedPage: 3, expectedSize: 10, expectedOffset: 20},
		{name: "page size capped", page: 2, size: 500, expectedPage: 2, expectedSize: 100, expectedOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := PageSize(tt.size)
			if size != tt.expectedSize {
				t.Errorf("expected size %d, got %d", tt.expectedSize, size)
			}
			if p := Page(tt.page); p != tt.expectedPage {
				t.Errorf("expected page %d, got %d", tt.expectedPage, p)
			}
			if o := Offset(tt.page, size); o != tt.expectedOffset {
				t.Errorf("expected offset %d, got %d", tt.expectedOffset, o)
			}
		})
	}
}

func TestWithTx_NoStatementsNoTransaction(t *testing.T) {
	d := &DBClient{logger: logging.NewNoopLogger()}

	called := false
	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		if lazyTxFromContext(ctx) == nil {
			t.Error("expected lazy transaction holder in context")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected function to be called")
	}
}

func TestWithTx_JoinsEnclosingTransaction(t *testing.T) {
	d := &DBClient{logger: logging.NewNoopLogger()}

	err := d.WithTx(context.Background(), func(outer context.Context) error {
		outerTx := lazyTxFromContext(outer)

		return d.WithTx(outer, func(inner context.Context) error {
			if lazyTxFromContext(inner) != outerTx {
				t.Error("expected inner unit of work to join the outer transaction")
			}
			return nil
		})
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithTx_PropagatesError(t *testing.T) {
	d := &DBClient{logger: logging.NewNoopLogger()}
	expected := errors.New("boom")

	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		return expected
	})

	if !errors.Is(err, expected) {
		t.Fatalf("expected %v, got %v", expected, err)
	}
}

func TestWithTx_BeginFailureNeverRunsInAutocommit(t *testing.T) {
	tests := []struct {
		name     string
		fnErr    error
		expected error
	}{
		{name: "later step fails", fnErr: errors.New("audit insert failed"), expected: nil},
		{name: "statement error swallowed", fnErr: nil, expected: errBeginRefused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beginFailsExecs.Store(0)
			d := newBeginFailsClient(t)

			err := d.WithTx(context.Background(), func(ctx context.Context) error {
				_, execErr := d.Statement(ctx).
					Update("tenants").
					Set("status", "SUSPENDED").
					Where(sq.Eq{"id": "t1"}).
					ExecContext(ctx)
				if !errors.Is(execErr, errBeginRefused) {
					t.Errorf("expected statement to fail with %v, got %v", errBeginRefused, execErr)
				}

				var count int
				if scanErr := d.Statement(ctx).Select("count(*)").From("tenants").QueryRowContext(ctx).Scan(&count); !errors.Is(scanErr, errBeginRefused) {
					t.Errorf("expected row scan to fail with %v, got %v", errBeginRefused, scanErr)
				}

				return tt.fnErr
			})

			if err == nil {
				t.Fatal("expected unit of work to fail")
			}
			if tt.fnErr != nil && !errors.Is(err, tt.fnErr) {
				t.Fatalf("expected %v, got %v", tt.fnErr, err)
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, err)
			}
			if n := beginFailsExecs.Load(); n != 0 {
				t.Fatalf("expected no statement outside a transaction, got %d", n)
			}
		})
	}
}

func TestStatement_WithoutUnitOfWorkUsesPool(t *testing.T) {
	beginFailsExecs.Store(0)
	d := newBeginFailsClient(t)

	if _, err := d.Statement(context.Background()).Update("tenants").Set("status", "ACTIVE").ExecContext(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := beginFailsExecs.Load(); n != 1 {
		t.Fatalf("expected 1 statement on the pool, got %d", n)
	}
}
