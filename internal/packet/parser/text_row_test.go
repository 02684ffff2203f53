package parser

import (
	"bytes"
	"testing"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
	"github.com/stretchr/testify/assert"
)

func TestTextRow_Parse(t *testing.T) {
	tests := []struct {
		name        string
		columnCount int
		payload     []byte

		wantValues    [][]byte
		assertErrFunc assert.ErrorAssertionFunc
	}{
		{
			name:        "三列普通行",
			columnCount: 3,
			payload: func() []byte {
				var buf bytes.Buffer
				buf.Write(encoding.LengthEncodeBytes([]byte("1")))
				buf.Write(encoding.LengthEncodeBytes([]byte("hello")))
				buf.Write(encoding.LengthEncodeBytes([]byte("3.14")))
				return buf.Bytes()
			}(),
			wantValues:    [][]byte{[]byte("1"), []byte("hello"), []byte("3.14")},
			assertErrFunc: assert.NoError,
		},
		{
			name:        "中间一列是NULL",
			columnCount: 3,
			payload: func() []byte {
				var buf bytes.Buffer
				buf.Write(encoding.LengthEncodeBytes([]byte("1")))
				buf.WriteByte(0xfb) // NULL
				buf.Write(encoding.LengthEncodeBytes([]byte("3")))
				return buf.Bytes()
			}(),
			wantValues:    [][]byte{[]byte("1"), nil, []byte("3")},
			assertErrFunc: assert.NoError,
		},
		{
			name:        "首列空串，载荷以0x00开头",
			columnCount: 2,
			payload: func() []byte {
				var buf bytes.Buffer
				buf.Write(encoding.LengthEncodeBytes([]byte{}))
				buf.Write(encoding.LengthEncodeBytes([]byte("a")))
				return buf.Bytes()
			}(),
			wantValues:    [][]byte{{}, []byte("a")},
			assertErrFunc: assert.NoError,
		},
		{
			name:        "长值用两字节长度前缀",
			columnCount: 1,
			payload: func() []byte {
				long := bytes.Repeat([]byte("x"), 300)
				return encoding.LengthEncodeBytes(long)
			}(),
			wantValues:    [][]byte{bytes.Repeat([]byte("x"), 300)},
			assertErrFunc: assert.NoError,
		},
		{
			name:        "列数不够",
			columnCount: 3,
			payload:     encoding.LengthEncodeBytes([]byte("1")),
			assertErrFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrMalformedPkt)
			},
		},
		{
			name:        "行数据多出字节",
			columnCount: 1,
			payload: func() []byte {
				var buf bytes.Buffer
				buf.Write(encoding.LengthEncodeBytes([]byte("1")))
				buf.Write(encoding.LengthEncodeBytes([]byte("2")))
				return buf.Bytes()
			}(),
			assertErrFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrMalformedPkt)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := TextRow{ColumnCount: tt.columnCount}
			err := row.Parse(tt.payload)
			tt.assertErrFunc(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tt.wantValues, row.Values)
		})
	}
}

func TestResultSetHeader_Parse(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte

		wantCount     uint64
		assertErrFunc assert.ErrorAssertionFunc
	}{
		{
			name:          "单列",
			payload:       encoding.LengthEncodeInteger(1),
			wantCount:     1,
			assertErrFunc: assert.NoError,
		},
		{
			name:          "宽表走两字节形式",
			payload:       encoding.LengthEncodeInteger(400),
			wantCount:     400,
			assertErrFunc: assert.NoError,
		},
		{
			name:    "列数为0非法",
			payload: encoding.LengthEncodeInteger(0),
			assertErrFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrMalformedPkt)
			},
		},
		{
			name:    "NULL哨兵非法",
			payload: []byte{0xfb},
			assertErrFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrMalformedPkt)
			},
		},
		{
			name:    "空载荷",
			payload: []byte{},
			assertErrFunc: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrMalformedPkt)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h ResultSetHeader
			err := h.Parse(tt.payload)
			tt.assertErrFunc(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tt.wantCount, h.ColumnCount)
		})
	}
}
