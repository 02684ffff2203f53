package parser

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
	"github.com/stretchr/testify/assert"
)

// buildColumnDefinition 按协议布局拼一个列定义载荷
func buildColumnDefinition(name string, charset uint32, length uint32,
	typ packet.MySQLType, fs packet.ColumnFlags, decimals byte) []byte {
	var buf bytes.Buffer
	buf.Write(encoding.LengthEncodeString("def"))   // catalog
	buf.Write(encoding.LengthEncodeString("test"))  // schema
	buf.Write(encoding.LengthEncodeString("o"))     // table
	buf.Write(encoding.LengthEncodeString("order")) // org_table
	buf.Write(encoding.LengthEncodeString(name))    // name
	buf.Write(encoding.LengthEncodeString(name))    // org_name
	// length of fixed length fields，固定 0x0c
	buf.WriteByte(0x0c)
	buf.Write(encoding.FixedLengthInteger(uint64(charset), 2)) // character_set
	buf.Write(encoding.FixedLengthInteger(uint64(length), 4))  // column_length
	buf.WriteByte(byte(typ))                                   // type
	buf.Write(encoding.FixedLengthInteger(uint64(fs), 2))      // flags
	buf.WriteByte(decimals)                                    // decimals
	buf.Write([]byte{0x00, 0x00})                              // 保留字节
	return buf.Bytes()
}

func TestColumnDefinition41_Parse(t *testing.T) {
	payload := buildColumnDefinition("user_id", packet.CharSetUtf8mb4GeneralCi, 11,
		packet.MySQLTypeLong, packet.ColumnFlagNotNull|packet.ColumnFlagPriKey, 0)

	var c ColumnDefinition41
	err := c.Parse(payload)
	assert.NoError(t, err)

	assert.Equal(t, "def", c.Catalog)
	assert.Equal(t, "test", c.Schema)
	assert.Equal(t, "o", c.Table)
	assert.Equal(t, "order", c.OrgTable)
	assert.Equal(t, "user_id", c.Name)
	assert.Equal(t, "user_id", c.OrgName)
	assert.Equal(t, packet.CharSetUtf8mb4GeneralCi, c.CharacterSet)
	assert.Equal(t, uint32(11), c.ColumnLength)
	assert.Equal(t, packet.MySQLTypeLong, c.Type)
	assert.True(t, c.Flags.Has(packet.ColumnFlagNotNull))
	assert.True(t, c.Flags.Has(packet.ColumnFlagPriKey))
	assert.Equal(t, byte(0), c.Decimals)
}

func TestColumnDefinition41_Parse_Errors(t *testing.T) {
	ok := buildColumnDefinition("c", packet.CharSetUtf8mb4GeneralCi, 20,
		packet.MySQLTypeVarString, 0, 0)

	tests := []struct {
		name    string
		payload []byte
	}{
		{
			name: "固定长度段不是0x0c",
			payload: func() []byte {
				bad := append([]byte{}, ok...)
				// catalog "def" 等六个字符串段之后就是固定长度段
				idx := bytes.Index(bad, []byte{0x0c, 0x2d, 0x00})
				bad[idx] = 0x0b
				return bad
			}(),
		},
		{
			name:    "载荷被截断",
			payload: ok[:len(ok)-6],
		},
		{
			name:    "空载荷",
			payload: []byte{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ColumnDefinition41
			assert.ErrorIs(t, c.Parse(tt.payload), errs.ErrMalformedPkt)
		})
	}
}

func TestColumnDefinition41_TypeHelpers(t *testing.T) {
	tests := []struct {
		name string
		col  ColumnDefinition41

		wantKind     packet.Kind
		wantScanType reflect.Type
		wantTypeName string
		wantNullable bool
	}{
		{
			name: "NOT NULL的INT主键",
			col: ColumnDefinition41{
				Type:  packet.MySQLTypeLong,
				Flags: packet.ColumnFlagNotNull | packet.ColumnFlagPriKey,
			},
			wantKind:     packet.KindInteger,
			wantScanType: reflect.TypeOf(int64(0)),
			wantTypeName: "INT",
			wantNullable: false,
		},
		{
			name: "可空的VARCHAR",
			col: ColumnDefinition41{
				Type: packet.MySQLTypeVarString,
			},
			wantKind:     packet.KindText,
			wantScanType: reflect.TypeOf(""),
			wantTypeName: "VARCHAR",
			wantNullable: true,
		},
		{
			name: "VARBINARY",
			col: ColumnDefinition41{
				Type:  packet.MySQLTypeVarString,
				Flags: packet.ColumnFlagBinary,
			},
			wantKind:     packet.KindBinary,
			wantScanType: reflect.TypeOf([]byte{}),
			wantTypeName: "VARBINARY",
			wantNullable: true,
		},
		{
			name: "无符号BIGINT",
			col: ColumnDefinition41{
				Type:  packet.MySQLTypeLongLong,
				Flags: packet.ColumnFlagUnsigned,
			},
			wantKind:     packet.KindInteger,
			wantScanType: reflect.TypeOf(uint64(0)),
			wantTypeName: "BIGINT",
			wantNullable: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.col.Kind())
			assert.Equal(t, tt.wantScanType, tt.col.ScanType())
			assert.Equal(t, tt.wantTypeName, tt.col.DatabaseTypeName())
			assert.Equal(t, tt.wantNullable, tt.col.Nullable())
		})
	}
}
