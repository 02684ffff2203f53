package packet

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		typ   MySQLType
		flags ColumnFlags
		want  Kind
	}{
		{
			name: "INT",
			typ:  MySQLTypeLong,
			want: KindInteger,
		},
		{
			name: "BIGINT",
			typ:  MySQLTypeLongLong,
			want: KindInteger,
		},
		{
			name: "YEAR按整数处理",
			typ:  MySQLTypeYear,
			want: KindInteger,
		},
		{
			name: "FLOAT",
			typ:  MySQLTypeFloat,
			want: KindFloat,
		},
		{
			name: "DOUBLE",
			typ:  MySQLTypeDouble,
			want: KindFloat,
		},
		{
			name: "DECIMAL",
			typ:  MySQLTypeNewDecimal,
			want: KindDecimal,
		},
		{
			name: "DATETIME",
			typ:  MySQLTypeDatetime,
			want: KindTemporal,
		},
		{
			name: "BIT",
			typ:  MySQLTypeBit,
			want: KindBit,
		},
		{
			name: "JSON",
			typ:  MySQLTypeJSON,
			want: KindText,
		},
		{
			name: "VARCHAR不带BINARY标志",
			typ:  MySQLTypeVarString,
			want: KindText,
		},
		{
			name:  "VARBINARY靠BINARY标志区分",
			typ:   MySQLTypeVarString,
			flags: ColumnFlagBinary,
			want:  KindBinary,
		},
		{
			name: "TEXT走BLOB线上类型",
			typ:  MySQLTypeBlob,
			want: KindText,
		},
		{
			name:  "BLOB带BINARY标志",
			typ:   MySQLTypeBlob,
			flags: ColumnFlagBinary,
			want:  KindBinary,
		},
		{
			name: "GEOMETRY",
			typ:  MySQLTypeGeometry,
			want: KindBinary,
		},
		{
			name: "协议内部类型归为未知",
			typ:  MySQLTypeTypedArray,
			want: KindUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.typ, tt.flags))
		})
	}
}

func TestScanTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		typ   MySQLType
		flags ColumnFlags
		want  reflect.Type
	}{
		{
			name: "有符号整数",
			typ:  MySQLTypeLong,
			want: reflect.TypeOf(int64(0)),
		},
		{
			name:  "无符号整数",
			typ:   MySQLTypeLongLong,
			flags: ColumnFlagUnsigned,
			want:  reflect.TypeOf(uint64(0)),
		},
		{
			name: "FLOAT保持单精度",
			typ:  MySQLTypeFloat,
			want: reflect.TypeOf(float32(0)),
		},
		{
			name: "DOUBLE",
			typ:  MySQLTypeDouble,
			want: reflect.TypeOf(float64(0)),
		},
		{
			name: "DECIMAL文本协议下给字符串",
			typ:  MySQLTypeNewDecimal,
			want: reflect.TypeOf(""),
		},
		{
			name: "DATETIME文本协议下给字符串",
			typ:  MySQLTypeDatetime,
			want: reflect.TypeOf(""),
		},
		{
			name: "VARCHAR",
			typ:  MySQLTypeVarString,
			want: reflect.TypeOf(""),
		},
		{
			name:  "VARBINARY给字节串",
			typ:   MySQLTypeVarString,
			flags: ColumnFlagBinary,
			want:  reflect.TypeOf([]byte{}),
		},
		{
			name: "BIT给字节串",
			typ:  MySQLTypeBit,
			want: reflect.TypeOf([]byte{}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanTypeOf(tt.typ, tt.flags))
		})
	}
}

func TestDatabaseTypeName(t *testing.T) {
	tests := []struct {
		name  string
		typ   MySQLType
		flags ColumnFlags
		want  string
	}{
		{
			name: "INT",
			typ:  MySQLTypeLong,
			want: "INT",
		},
		{
			name: "BIGINT",
			typ:  MySQLTypeLongLong,
			want: "BIGINT",
		},
		{
			name: "MEDIUMINT",
			typ:  MySQLTypeInt24,
			want: "MEDIUMINT",
		},
		{
			name: "DECIMAL新旧线上类型同名",
			typ:  MySQLTypeNewDecimal,
			want: "DECIMAL",
		},
		{
			name: "VARCHAR",
			typ:  MySQLTypeVarString,
			want: "VARCHAR",
		},
		{
			name:  "VARBINARY",
			typ:   MySQLTypeVarString,
			flags: ColumnFlagBinary,
			want:  "VARBINARY",
		},
		{
			name: "CHAR",
			typ:  MySQLTypeString,
			want: "CHAR",
		},
		{
			name:  "BINARY",
			typ:   MySQLTypeString,
			flags: ColumnFlagBinary,
			want:  "BINARY",
		},
		{
			name: "TEXT",
			typ:  MySQLTypeBlob,
			want: "TEXT",
		},
		{
			name:  "BLOB",
			typ:   MySQLTypeBlob,
			flags: ColumnFlagBinary,
			want:  "BLOB",
		},
		{
			name:  "LONGBLOB",
			typ:   MySQLTypeLongBlob,
			flags: ColumnFlagBinary,
			want:  "LONGBLOB",
		},
		{
			name: "TIMESTAMP",
			typ:  MySQLTypeTimestamp,
			want: "TIMESTAMP",
		},
		{
			name: "未知类型给空串",
			typ:  MySQLTypeInvalid,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DatabaseTypeName(tt.typ, tt.flags))
		})
	}
}
