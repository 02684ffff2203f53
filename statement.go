package mysqldriver

import (
	"context"
	"database/sql/driver"

	"github.com/ecodeclub/ekit/slice"
)

// stmt 客户端侧的语句对象，只持有 SQL 文本。
// NumInput 返回 0，所以带占位符参数的调用在 database/sql
// 那一层就会被拦下来
type stmt struct {
	conn  *conn
	query string
}

var (
	_ driver.Stmt             = (*stmt)(nil)
	_ driver.StmtExecContext  = (*stmt)(nil)
	_ driver.StmtQueryContext = (*stmt)(nil)
)

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), slice.Map(args, func(idx int, src driver.Value) driver.NamedValue {
		return driver.NamedValue{Value: src}
	}))
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), slice.Map(args, func(idx int, src driver.Value) driver.NamedValue {
		return driver.NamedValue{Value: src}
	}))
}

func (s *stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, ErrPlaceholder
	}
	if _, err := s.conn.raw.Query(ctx, s.query); err != nil {
		return nil, err
	}
	res := s.conn.raw.Result()
	return &result{
		affected: int64(res.AffectedRows),
		insertID: int64(res.LastInsertID),
	}, nil
}

func (s *stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, ErrPlaceholder
	}
	sets, err := s.conn.raw.Query(ctx, s.query)
	if err != nil {
		return nil, err
	}
	return newRows(sets), nil
}

func (s *stmt) NumInput() int {
	return 0
}

func (s *stmt) Close() error {
	return nil
}
