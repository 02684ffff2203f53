package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedLengthInteger(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		byteSize int
		want     []byte
	}{
		{
			name:     "int<1>",
			value:    0x12,
			byteSize: 1,
			want:     []byte{0x12},
		},
		{
			name:     "int<2>小端",
			value:    0x1234,
			byteSize: 2,
			want:     []byte{0x34, 0x12},
		},
		{
			name:     "int<3>小端",
			value:    0x123456,
			byteSize: 3,
			want:     []byte{0x56, 0x34, 0x12},
		},
		{
			name:     "int<4>小端",
			value:    0x12345678,
			byteSize: 4,
			want:     []byte{0x78, 0x56, 0x34, 0x12},
		},
		{
			name:     "int<6>小端",
			value:    0x123456789ABC,
			byteSize: 6,
			want:     []byte{0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12},
		},
		{
			name:     "int<8>小端",
			value:    0x123456789ABCDEF0,
			byteSize: 8,
			want:     []byte{0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12},
		},
		{
			name:     "高位截断",
			value:    0x1234,
			byteSize: 1,
			want:     []byte{0x34},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FixedLengthInteger(tt.value, tt.byteSize))
		})
	}
}

func TestLengthEncodeInteger(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{
			name:  "n=0",
			value: 0,
			want:  []byte{0x00},
		},
		{
			name:  "n=250单字节上界",
			value: 250,
			want:  []byte{0xFA},
		},
		{
			name:  "n=251进入0xFC两字节形式",
			value: 251,
			want:  []byte{0xFC, 0xFB, 0x00},
		},
		{
			name:  "n=2^16-1两字节上界",
			value: 65535,
			want:  []byte{0xFC, 0xFF, 0xFF},
		},
		{
			name:  "n=2^16进入0xFD三字节形式",
			value: 65536,
			want:  []byte{0xFD, 0x00, 0x00, 0x01},
		},
		{
			name:  "n=2^24-1三字节上界",
			value: 16777215,
			want:  []byte{0xFD, 0xFF, 0xFF, 0xFF},
		},
		{
			name:  "n=2^24进入0xFE八字节形式",
			value: 16777216,
			want:  []byte{0xFE, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "n=2^64-1八字节上界",
			value: 18446744073709551615,
			want:  []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LengthEncodeInteger(tt.value))
		})
	}
}
