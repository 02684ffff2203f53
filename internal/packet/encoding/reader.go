package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/meoying/mysqldriver/internal/errs"
)

// Reader 在一段报文载荷上维护一个显式游标，按协议基本类型读取数据。
// 返回的切片引用底层数组，不做拷贝。
// 读越界说明上游的帧长或者列数对不上了，统一归为 errs.ErrMalformedPkt
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos 当前游标位置
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining 剩余未读字节数
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) require(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return fmt.Errorf("%w：期望再读 %d 字节，只剩 %d 字节",
			errs.ErrMalformedPkt, n, len(r.data)-r.pos)
	}
	return nil
}

// Uint8 int<1>
func (r *Reader) Uint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// Uint16 int<2> 小端
func (r *Reader) Uint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// Uint24 int<3> 小端
func (r *Reader) Uint24() (uint32, error) {
	if err := r.require(3); err != nil {
		return 0, err
	}
	v := uint32(r.data[r.pos]) | uint32(r.data[r.pos+1])<<8 | uint32(r.data[r.pos+2])<<16
	r.pos += 3
	return v, nil
}

// Uint32 int<4> 小端
func (r *Reader) Uint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// Uint64 int<8> 小端
func (r *Reader) Uint64() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// LengthEncodedInteger 读取 int<lenenc>
// 第二个返回值表示读到的是不是 NULL 哨兵(0xFB)，
// 游标严格前进消费掉的宽度：1、3、4 或者 9 个字节
func (r *Reader) LengthEncodedInteger() (uint64, bool, error) {
	first, err := r.Uint8()
	if err != nil {
		return 0, false, err
	}
	switch {
	case first < 0xFB:
		// [0, 251)	1-byte integer
		return uint64(first), false, nil
	case first == 0xFB:
		// NULL 哨兵，是不是合法取决于上下文，交给调用方判断
		return 0, true, nil
	case first == 0xFC:
		// [251, 2^16) 0xFC + 2-byte integer
		v, err := r.Uint16()
		return uint64(v), false, err
	case first == 0xFD:
		// [2^16, 2^24) 0xFD + 3-byte integer
		v, err := r.Uint24()
		return uint64(v), false, err
	case first == 0xFE:
		// [2^24, 2^64) 0xFE + 8-byte integer
		v, err := r.Uint64()
		return v, false, err
	default:
		return 0, false, fmt.Errorf("%w：int<lenenc> 首字节非法 0x%02x",
			errs.ErrMalformedPkt, first)
	}
}

// Bytes string<fixed>，由调用方给出长度
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// NullTerminatedBytes string<NUL>，扫描到 00 字节为止
func (r *Reader) NullTerminatedBytes() ([]byte, error) {
	idx := bytes.IndexByte(r.data[r.pos:], 0x00)
	if idx < 0 {
		return nil, fmt.Errorf("%w：string<NUL> 缺少结尾的 00 字节", errs.ErrMalformedPkt)
	}
	v := r.data[r.pos : r.pos+idx]
	r.pos += idx + 1
	return v, nil
}

// LengthEncodedBytes string<lenenc>
// NULL 哨兵返回 (nil, true, nil)
func (r *Reader) LengthEncodedBytes() ([]byte, bool, error) {
	length, isNull, err := r.LengthEncodedInteger()
	if err != nil || isNull {
		return nil, isNull, err
	}
	v, err := r.Bytes(int(length))
	return v, false, err
}

// LengthEncodedString string<lenenc>，语境里不允许 NULL 的版本
func (r *Reader) LengthEncodedString() (string, error) {
	v, isNull, err := r.LengthEncodedBytes()
	if err != nil {
		return "", err
	}
	if isNull {
		return "", fmt.Errorf("%w：string<lenenc> 此处不允许 NULL", errs.ErrMalformedPkt)
	}
	return string(v), nil
}

// Skip 跳过 n 个字节
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Rest 余下的全部字节，游标推进到末尾
func (r *Reader) Rest() []byte {
	v := r.data[r.pos:]
	r.pos = len(r.data)
	return v
}
