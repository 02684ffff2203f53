package log

import (
	"context"
	"database/sql/driver"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

var _ driver2.Conn = &connWrapper{}

type connWrapper struct {
	conn   driver2.Conn
	logger logger
}

func (c *connWrapper) Prepare(query string) (driver.Stmt, error) {
	stmt, err := c.conn.Prepare(query)
	if err != nil {
		c.logger.Error("创建语句失败", "语句", query, "错误", err)
		return nil, err
	}
	return c.wrapStmt(stmt, query)
}

func (c *connWrapper) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	if err != nil {
		c.logger.Error("创建语句失败", "语句", query, "错误", err)
		return nil, err
	}
	return c.wrapStmt(stmt, query)
}

func (c *connWrapper) wrapStmt(stmt driver.Stmt, query string) (driver.Stmt, error) {
	ss, ok := stmt.(driver2.Stmt)
	if !ok {
		return nil, ErrUnsupportedStmt
	}
	c.logger.Debug("创建语句成功", "语句", query)
	return &stmtWrapper{stmt: ss, query: query, logger: c.logger}, nil
}

func (c *connWrapper) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	rows, err := c.conn.QueryContext(ctx, query, args)
	if err != nil {
		c.logger.Error("查询失败", "语句", query, "错误", err)
		return nil, err
	}
	rr, ok := rows.(driver2.Rows)
	if !ok {
		return nil, ErrUnsupportedRows
	}
	c.logger.Debug("查询成功", "语句", query)
	return &rowsWrapper{rows: rr, logger: c.logger}, nil
}

func (c *connWrapper) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	res, err := c.conn.ExecContext(ctx, query, args)
	if err != nil {
		c.logger.Error("执行失败", "语句", query, "错误", err)
		return nil, err
	}
	c.logger.Debug("执行成功", "语句", query)
	return &resultWrapper{result: res, logger: c.logger}, nil
}

// Begin starts and returns a new transaction.
//
// Deprecated: Drivers should implement ConnBeginTx instead (or additionally).
func (c *connWrapper) Begin() (driver.Tx, error) {
	tx, err := c.conn.Begin()
	if err != nil {
		c.logger.Error("开启事务失败", "错误", err)
		return nil, err
	}
	c.logger.Debug("开启事务成功")
	return &txWrapper{tx: tx, logger: c.logger}, nil
}

func (c *connWrapper) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	tx, err := c.conn.BeginTx(ctx, opts)
	if err != nil {
		c.logger.Error("开启事务失败", "错误", err)
		return nil, err
	}
	c.logger.Debug("开启事务成功")
	return &txWrapper{tx: tx, logger: c.logger}, nil
}

func (c *connWrapper) Ping(ctx context.Context) error {
	err := c.conn.Ping(ctx)
	if err != nil {
		c.logger.Error("探活失败", "错误", err)
		return err
	}
	c.logger.Debug("探活成功")
	return nil
}

func (c *connWrapper) ResetSession(ctx context.Context) error {
	err := c.conn.ResetSession(ctx)
	if err != nil {
		c.logger.Error("重置会话失败", "错误", err)
		return err
	}
	c.logger.Debug("重置会话成功")
	return nil
}

func (c *connWrapper) IsValid() bool {
	valid := c.conn.IsValid()
	c.logger.Debug("连接有效性检查", "有效", valid)
	return valid
}

func (c *connWrapper) CheckNamedValue(value *driver.NamedValue) error {
	err := c.conn.CheckNamedValue(value)
	if err != nil {
		// 文本协议拒绝占位符参数是预期行为，不按错误记
		c.logger.Debug("参数检查不通过", "错误", err)
	}
	return err
}

func (c *connWrapper) Close() error {
	err := c.conn.Close()
	if err != nil {
		c.logger.Error("关闭连接失败", "错误", err)
		return err
	}
	c.logger.Debug("关闭连接成功")
	return nil
}
