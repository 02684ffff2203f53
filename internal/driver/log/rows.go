package log

import (
	"database/sql/driver"
	"errors"
	"io"
	"reflect"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

var _ driver2.Rows = &rowsWrapper{}

type rowsWrapper struct {
	rows   driver2.Rows
	logger logger
}

func (r *rowsWrapper) Columns() []string {
	cs := r.rows.Columns()
	r.logger.Debug("获取列名", "列名", cs)
	return cs
}

func (r *rowsWrapper) Next(dest []driver.Value) error {
	err := r.rows.Next(dest)
	if err != nil {
		// 行耗尽走 io.EOF，是正常收尾而不是错误
		if !errors.Is(err, io.EOF) {
			r.logger.Error("读取下一行失败", "错误", err)
		}
		return err
	}
	return nil
}

func (r *rowsWrapper) HasNextResultSet() bool {
	hasNext := r.rows.HasNextResultSet()
	r.logger.Debug("检查是否还有结果集", "有", hasNext)
	return hasNext
}

func (r *rowsWrapper) NextResultSet() error {
	err := r.rows.NextResultSet()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.logger.Error("切换结果集失败", "错误", err)
		}
		return err
	}
	r.logger.Debug("切换结果集成功")
	return nil
}

func (r *rowsWrapper) ColumnTypeScanType(index int) reflect.Type {
	return r.rows.ColumnTypeScanType(index)
}

func (r *rowsWrapper) ColumnTypeDatabaseTypeName(index int) string {
	return r.rows.ColumnTypeDatabaseTypeName(index)
}

func (r *rowsWrapper) ColumnTypeNullable(index int) (nullable, ok bool) {
	return r.rows.ColumnTypeNullable(index)
}

func (r *rowsWrapper) ColumnTypeLength(index int) (length int64, ok bool) {
	return r.rows.ColumnTypeLength(index)
}

func (r *rowsWrapper) ColumnTypePrecisionScale(index int) (precision, scale int64, ok bool) {
	return r.rows.ColumnTypePrecisionScale(index)
}

func (r *rowsWrapper) Close() error {
	err := r.rows.Close()
	if err != nil {
		r.logger.Error("关闭结果集失败", "错误", err)
		return err
	}
	r.logger.Debug("关闭结果集成功")
	return nil
}
