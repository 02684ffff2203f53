package connection

import (
	"github.com/ecodeclub/ekit/slice"

	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/parser"
)

// ResultSet 一条语句产出的结果集：列定义加上缓冲好的全部行数据。
// 行在读取响应流时一次性装载，之后只读
type ResultSet struct {
	fields []*parser.ColumnDefinition41
	rows   [][][]byte
}

func NewResultSet(fields []*parser.ColumnDefinition41) *ResultSet {
	return &ResultSet{
		fields: fields,
		rows:   make([][][]byte, 0, 8),
	}
}

// AppendRow 装载一行。只在读取响应流时调用
func (rs *ResultSet) AppendRow(values [][]byte) {
	rs.rows = append(rs.rows, values)
}

// Fields 列定义，和列数量报文声明的数量一致
func (rs *ResultSet) Fields() []*parser.ColumnDefinition41 {
	return rs.fields
}

// Columns 列名(别名)列表
func (rs *ResultSet) Columns() []string {
	return slice.Map(rs.fields, func(idx int, src *parser.ColumnDefinition41) string {
		return src.Name
	})
}

func (rs *ResultSet) RowCount() int {
	return len(rs.rows)
}

// Row 第 i 行的原始字节值，nil 元素表示 NULL
func (rs *ResultSet) Row(i int) [][]byte {
	return rs.rows[i]
}

// Value 指定行列的原始字节值。
// 第二个返回值在 NULL 或者越界时为 false
func (rs *ResultSet) Value(row, col int) ([]byte, bool) {
	if row < 0 || row >= len(rs.rows) {
		return nil, false
	}
	values := rs.rows[row]
	if col < 0 || col >= len(values) {
		return nil, false
	}
	if values[col] == nil {
		return nil, false
	}
	return values[col], true
}

// StringValue 指定行列按列字符集解码之后的字符串。
// 第二个返回值语义同 Value
func (rs *ResultSet) StringValue(row, col int) (string, bool) {
	v, ok := rs.Value(row, col)
	if !ok {
		return "", false
	}
	return packet.DecodeText(rs.fields[col].CharacterSet, v), true
}
