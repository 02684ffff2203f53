package mysqldriver

import (
	"database/sql/driver"
	"io"
	"reflect"

	"github.com/meoying/mysqldriver/internal/connection"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/parser"
)

// rows 多个结果集上的游标。
// 结果集在命令执行时已经整体缓冲，这里只负责遍历，
// 值以原始字节返回，类型转换交给 database/sql 的扫描逻辑
type rows struct {
	sets []*connection.ResultSet
	cur  int
	row  int
}

var (
	_ driver.Rows                           = (*rows)(nil)
	_ driver.RowsNextResultSet              = (*rows)(nil)
	_ driver.RowsColumnTypeScanType         = (*rows)(nil)
	_ driver.RowsColumnTypeDatabaseTypeName = (*rows)(nil)
	_ driver.RowsColumnTypeNullable         = (*rows)(nil)
	_ driver.RowsColumnTypeLength           = (*rows)(nil)
	_ driver.RowsColumnTypePrecisionScale   = (*rows)(nil)
)

func newRows(sets []*connection.ResultSet) *rows {
	return &rows{sets: sets}
}

// fields 当前结果集的列定义，没有结果集时为 nil
func (r *rows) fields() []*parser.ColumnDefinition41 {
	if r.cur >= len(r.sets) {
		return nil
	}
	return r.sets[r.cur].Fields()
}

func (r *rows) Columns() []string {
	if r.cur >= len(r.sets) {
		return []string{}
	}
	return r.sets[r.cur].Columns()
}

func (r *rows) Close() error {
	r.sets = nil
	r.cur = 0
	r.row = 0
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.cur >= len(r.sets) {
		return io.EOF
	}
	rs := r.sets[r.cur]
	if r.row >= rs.RowCount() {
		return io.EOF
	}
	values := rs.Row(r.row)
	for i := range dest {
		if values[i] == nil {
			dest[i] = nil
			continue
		}
		dest[i] = values[i]
	}
	r.row++
	return nil
}

func (r *rows) HasNextResultSet() bool {
	return r.cur+1 < len(r.sets)
}

func (r *rows) NextResultSet() error {
	if !r.HasNextResultSet() {
		return io.EOF
	}
	r.cur++
	r.row = 0
	return nil
}

func (r *rows) ColumnTypeScanType(index int) reflect.Type {
	return r.fields()[index].ScanType()
}

func (r *rows) ColumnTypeDatabaseTypeName(index int) string {
	return r.fields()[index].DatabaseTypeName()
}

func (r *rows) ColumnTypeNullable(index int) (nullable, ok bool) {
	return r.fields()[index].Nullable(), true
}

func (r *rows) ColumnTypeLength(index int) (length int64, ok bool) {
	f := r.fields()[index]
	switch f.Kind() {
	case packet.KindText, packet.KindBinary:
		return int64(f.ColumnLength), true
	default:
		return 0, false
	}
}

func (r *rows) ColumnTypePrecisionScale(index int) (precision, scale int64, ok bool) {
	f := r.fields()[index]
	if f.Kind() != packet.KindDecimal {
		return 0, 0, false
	}
	return int64(f.ColumnLength), int64(f.Decimals), true
}
