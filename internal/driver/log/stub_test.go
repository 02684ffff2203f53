package log

import (
	"context"
	"database/sql/driver"
	"io"
	"reflect"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

// recordingLogger 只记调用次数，断言某级别日志发生过
type recordingLogger struct {
	debugs int
	errors int
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.debugs++ }
func (l *recordingLogger) Error(msg string, args ...any) { l.errors++ }

var (
	_ driver2.Driver    = &fakeDriver{}
	_ driver2.Connector = &fakeConnector{}
	_ driver2.Conn      = &fakeConn{}
	_ driver2.Stmt      = &fakeStmt{}
	_ driver2.Rows      = &fakeRows{}
)

// fakeDriver err 非空时所有方法都失败。
// conn 可以换成接口不全的对象来触发包装失败
type fakeDriver struct {
	err  error
	conn driver.Conn
}

func (d *fakeDriver) Open(name string) (driver.Conn, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.conn != nil {
		return d.conn, nil
	}
	return &fakeConn{}, nil
}

func (d *fakeDriver) OpenConnector(name string) (driver.Connector, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &fakeConnector{}, nil
}

type fakeConnector struct {
	err  error
	conn driver.Conn
}

func (c *fakeConnector) Connect(ctx context.Context) (driver.Conn, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.conn != nil {
		return c.conn, nil
	}
	return &fakeConn{}, nil
}

func (c *fakeConnector) Driver() driver.Driver {
	return &fakeDriver{}
}

type fakeConn struct {
	err  error
	stmt driver.Stmt
	rows driver.Rows
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.stmt != nil {
		return c.stmt, nil
	}
	return &fakeStmt{}, nil
}

func (c *fakeConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	return c.Prepare(query)
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.rows != nil {
		return c.rows, nil
	}
	return &fakeRows{rows: 1}, nil
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &fakeResult{affected: 1, insertID: 2}, nil
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &fakeTx{}, nil
}

func (c *fakeConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return c.Begin()
}

func (c *fakeConn) Ping(ctx context.Context) error { return c.err }

func (c *fakeConn) ResetSession(ctx context.Context) error { return c.err }

func (c *fakeConn) IsValid() bool { return c.err == nil }

func (c *fakeConn) CheckNamedValue(value *driver.NamedValue) error { return c.err }

func (c *fakeConn) Close() error { return c.err }

type fakeStmt struct {
	err  error
	rows driver.Rows
}

func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &fakeResult{affected: 1, insertID: 2}, nil
}

func (s *fakeStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	return s.Exec(nil)
}

func (s *fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.rows != nil {
		return s.rows, nil
	}
	return &fakeRows{rows: 1}, nil
}

func (s *fakeStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return s.Query(nil)
}

func (s *fakeStmt) NumInput() int { return 0 }

func (s *fakeStmt) Close() error { return s.err }

// fakeRows rows 表示 Next 还能成功多少次
type fakeRows struct {
	err  error
	rows int
}

func (r *fakeRows) Columns() []string { return []string{"id"} }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.err != nil {
		return r.err
	}
	if r.rows == 0 {
		return io.EOF
	}
	r.rows--
	dest[0] = []byte("1")
	return nil
}

func (r *fakeRows) HasNextResultSet() bool { return false }

func (r *fakeRows) NextResultSet() error {
	if r.err != nil {
		return r.err
	}
	return io.EOF
}

func (r *fakeRows) ColumnTypeScanType(index int) reflect.Type { return reflect.TypeOf(int64(0)) }

func (r *fakeRows) ColumnTypeDatabaseTypeName(index int) string { return "BIGINT" }

func (r *fakeRows) ColumnTypeNullable(index int) (nullable, ok bool) { return true, true }

func (r *fakeRows) ColumnTypeLength(index int) (length int64, ok bool) { return 0, false }

func (r *fakeRows) ColumnTypePrecisionScale(index int) (precision, scale int64, ok bool) {
	return 0, 0, false
}

func (r *fakeRows) Close() error { return r.err }

type fakeTx struct {
	err error
}

func (t *fakeTx) Commit() error { return t.err }

func (t *fakeTx) Rollback() error { return t.err }

type fakeResult struct {
	err      error
	affected int64
	insertID int64
}

func (r *fakeResult) LastInsertId() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.insertID, nil
}

func (r *fakeResult) RowsAffected() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.affected, nil
}

// bareConn 只有 driver.Conn 的最小方法集合，用来触发包装失败
type bareConn struct{}

func (bareConn) Prepare(query string) (driver.Stmt, error) { return bareStmt{}, nil }

func (bareConn) Close() error { return nil }

func (bareConn) Begin() (driver.Tx, error) { return &fakeTx{}, nil }

type bareStmt struct{}

func (bareStmt) Exec(args []driver.Value) (driver.Result, error) { return &fakeResult{}, nil }

func (bareStmt) Query(args []driver.Value) (driver.Rows, error) { return bareRows{}, nil }

func (bareStmt) NumInput() int { return 0 }

func (bareStmt) Close() error { return nil }

type bareRows struct{}

func (bareRows) Columns() []string { return nil }

func (bareRows) Next(dest []driver.Value) error { return io.EOF }

func (bareRows) Close() error { return nil }
