package log

import (
	"context"
	"database/sql/driver"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

var _ driver2.Stmt = &stmtWrapper{}

type stmtWrapper struct {
	stmt   driver2.Stmt
	query  string
	logger logger
}

func (s *stmtWrapper) Exec(args []driver.Value) (driver.Result, error) {
	res, err := s.stmt.Exec(args)
	if err != nil {
		s.logger.Error("语句执行失败", "语句", s.query, "错误", err)
		return nil, err
	}
	s.logger.Debug("语句执行成功", "语句", s.query)
	return &resultWrapper{result: res, logger: s.logger}, nil
}

func (s *stmtWrapper) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	res, err := s.stmt.ExecContext(ctx, args)
	if err != nil {
		s.logger.Error("语句执行失败", "语句", s.query, "错误", err)
		return nil, err
	}
	s.logger.Debug("语句执行成功", "语句", s.query)
	return &resultWrapper{result: res, logger: s.logger}, nil
}

func (s *stmtWrapper) Query(args []driver.Value) (driver.Rows, error) {
	rows, err := s.stmt.Query(args)
	if err != nil {
		s.logger.Error("语句查询失败", "语句", s.query, "错误", err)
		return nil, err
	}
	return s.wrapRows(rows)
}

func (s *stmtWrapper) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	rows, err := s.stmt.QueryContext(ctx, args)
	if err != nil {
		s.logger.Error("语句查询失败", "语句", s.query, "错误", err)
		return nil, err
	}
	return s.wrapRows(rows)
}

func (s *stmtWrapper) wrapRows(rows driver.Rows) (driver.Rows, error) {
	rr, ok := rows.(driver2.Rows)
	if !ok {
		return nil, ErrUnsupportedRows
	}
	s.logger.Debug("语句查询成功", "语句", s.query)
	return &rowsWrapper{rows: rr, logger: s.logger}, nil
}

func (s *stmtWrapper) NumInput() int {
	return s.stmt.NumInput()
}

func (s *stmtWrapper) Close() error {
	err := s.stmt.Close()
	if err != nil {
		s.logger.Error("关闭语句失败", "语句", s.query, "错误", err)
		return err
	}
	s.logger.Debug("关闭语句成功", "语句", s.query)
	return nil
}
