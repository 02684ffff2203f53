package mysqldriver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/meoying/mysqldriver/internal/connection"
)

// conn 把协议核心适配成 database/sql/driver 的接口。
// 文本协议没有服务端预编译，所以占位符参数一律拒绝：
// CheckNamedValue 在参数转换阶段直接报 ErrPlaceholder，
// QueryContext/ExecContext 自身再留一道 driver.ErrSkip 兜底
type conn struct {
	raw *connection.Conn
}

var (
	_ driver.Conn              = (*conn)(nil)
	_ driver.Pinger            = (*conn)(nil)
	_ driver.QueryerContext    = (*conn)(nil)
	_ driver.ExecerContext     = (*conn)(nil)
	_ driver.ConnBeginTx       = (*conn)(nil)
	_ driver.SessionResetter   = (*conn)(nil)
	_ driver.Validator         = (*conn)(nil)
	_ driver.NamedValueChecker = (*conn)(nil)
)

func newConn(raw *connection.Conn) *conn {
	return &conn{raw: raw}
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

func (c *conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// 客户端语句，只记下 SQL 文本，真正执行还是走文本协议
	return &stmt{conn: c, query: query}, nil
}

func (c *conn) Close() error {
	return c.raw.Close()
}

func (c *conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if level := sql.IsolationLevel(opts.Isolation); level != sql.LevelDefault {
		stmt, err := isolationStmt(level)
		if err != nil {
			return nil, err
		}
		if _, err := c.raw.Query(ctx, stmt); err != nil {
			return nil, err
		}
	}
	begin := "START TRANSACTION"
	if opts.ReadOnly {
		begin = "START TRANSACTION READ ONLY"
	}
	if _, err := c.raw.Query(ctx, begin); err != nil {
		return nil, err
	}
	return &tx{conn: c}, nil
}

func isolationStmt(level sql.IsolationLevel) (string, error) {
	switch level {
	case sql.LevelReadUncommitted:
		return "SET TRANSACTION ISOLATION LEVEL READ UNCOMMITTED", nil
	case sql.LevelReadCommitted:
		return "SET TRANSACTION ISOLATION LEVEL READ COMMITTED", nil
	case sql.LevelRepeatableRead:
		return "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ", nil
	case sql.LevelSerializable:
		return "SET TRANSACTION ISOLATION LEVEL SERIALIZABLE", nil
	default:
		return "", fmt.Errorf("不支持的隔离级别 %s", level)
	}
}

func (c *conn) Ping(ctx context.Context) error {
	if !c.raw.Valid() {
		return driver.ErrBadConn
	}
	return c.raw.Ping(ctx)
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, driver.ErrSkip
	}
	sets, err := c.raw.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return newRows(sets), nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, driver.ErrSkip
	}
	if _, err := c.raw.Query(ctx, query); err != nil {
		return nil, err
	}
	res := c.raw.Result()
	return &result{
		affected: int64(res.AffectedRows),
		insertID: int64(res.LastInsertID),
	}, nil
}

// CheckNamedValue 任何参数都过不了这一关，
// 带占位符的语句在进驱动之前就被 database/sql 拦下
func (c *conn) CheckNamedValue(value *driver.NamedValue) error {
	return ErrPlaceholder
}

func (c *conn) ResetSession(ctx context.Context) error {
	if !c.raw.Valid() {
		return driver.ErrBadConn
	}
	if err := c.raw.ResetConnection(ctx); err != nil {
		// 清不掉的会话直接废弃，不能带着脏状态回池
		return driver.ErrBadConn
	}
	return nil
}

func (c *conn) IsValid() bool {
	return c.raw.Valid()
}
