package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthEncodeString(t *testing.T) {
	tests := []struct {
		name string
		str  string
		want []byte
	}{
		{
			name: "空字符串",
			str:  "",
			want: []byte{0x00},
		},
		{
			name: "短字符串",
			str:  "abc",
			want: []byte{0x03, 0x61, 0x62, 0x63},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LengthEncodeString(tt.str))
		})
	}
}

func TestLengthEncodeString_LongString(t *testing.T) {
	// 长度 300 超过 250，前缀应该用 0xFC 两字节形式
	str := make([]byte, 300)
	for i := range str {
		str[i] = 'x'
	}
	got := LengthEncodeString(string(str))
	assert.Equal(t, []byte{0xFC, 0x2C, 0x01}, got[:3])
	assert.Equal(t, str, got[3:])
}

func TestNullTerminatedString(t *testing.T) {
	tests := []struct {
		name string
		str  string
		want []byte
	}{
		{
			name: "空字符串",
			str:  "",
			want: []byte{0x00},
		},
		{
			name: "普通字符串",
			str:  "root",
			want: []byte{0x72, 0x6f, 0x6f, 0x74, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NullTerminatedString(tt.str))
		})
	}
}
