package connection

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/meoying/mysqldriver/internal/errs"
)

// minCompressLength 低于这个长度的帧不值得压缩，原样直传。
// 压缩帧头里把未压缩长度填 0 来表示这种情况
const minCompressLength = 50

// rawStream 压缩层对底层链路的全部要求
type rawStream interface {
	readFull(buf []byte) error
	write(data []byte) error
}

// compressedTransport 压缩协议的帧收发。
// 写出去的每个物理帧各自包进一个压缩帧；
// 读进来的时候服务端可能把多个物理帧打包进同一个压缩帧，
// 所以解压出来的字节流要先攒在缓冲里，再按帧头切出物理帧。
// 压缩帧有自己独立的序号计数，跟着命令一起清零
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_compression.html
type compressedTransport struct {
	inner    rawStream
	sequence uint8
	// buf 已解压但还没被上层取走的字节流
	buf []byte
}

func newCompressedTransport(inner *plainTransport) *compressedTransport {
	return &compressedTransport{inner: inner}
}

func (t *compressedTransport) readFrame() ([]byte, error) {
	// 先凑够物理帧头，再凑够载荷
	for len(t.buf) < 4 {
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
	length := int(uint32(t.buf[0]) | uint32(t.buf[1])<<8 | uint32(t.buf[2])<<16)
	for len(t.buf) < 4+length {
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
	frame := t.buf[:4+length]
	t.buf = t.buf[4+length:]
	return frame, nil
}

// fill 读取一个压缩帧，把里面的字节流追加到缓冲
func (t *compressedTransport) fill() error {
	// 压缩帧头：int<3> 压缩后长度 + int<1> 序号 + int<3> 压缩前长度
	header := make([]byte, 7)
	if err := t.inner.readFull(header); err != nil {
		return err
	}
	compLen := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)
	if header[3] != t.sequence {
		return errs.ErrPktSync
	}
	t.sequence++
	uncompLen := int(uint32(header[4]) | uint32(header[5])<<8 | uint32(header[6])<<16)

	body := make([]byte, compLen)
	if err := t.inner.readFull(body); err != nil {
		return err
	}

	// 压缩前长度为 0 表示对端觉得不值得压，载荷是原样的
	if uncompLen == 0 {
		t.buf = append(t.buf, body...)
		return nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w：压缩帧解压失败 %w", errs.ErrMalformedPkt, err)
	}
	defer func() {
		_ = zr.Close()
	}()
	plain := make([]byte, uncompLen)
	if _, err := io.ReadFull(zr, plain); err != nil {
		return fmt.Errorf("%w：压缩帧内容不完整 %w", errs.ErrMalformedPkt, err)
	}
	t.buf = append(t.buf, plain...)
	return nil
}

func (t *compressedTransport) writeFrame(data []byte) error {
	out := make([]byte, 7, 7+len(data))

	if len(data) < minCompressLength {
		// 太小不压，未压缩长度填 0
		out[0] = byte(len(data))
		out[1] = byte(len(data) >> 8)
		out[2] = byte(len(data) >> 16)
		out[3] = t.sequence
		out = append(out, data...)
		t.sequence++
		return t.inner.write(out)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	body := compressed.Bytes()
	out[0] = byte(len(body))
	out[1] = byte(len(body) >> 8)
	out[2] = byte(len(body) >> 16)
	out[3] = t.sequence
	out[4] = byte(len(data))
	out[5] = byte(len(data) >> 8)
	out[6] = byte(len(data) >> 16)
	out = append(out, body...)
	t.sequence++
	return t.inner.write(out)
}

func (t *compressedTransport) reset() {
	t.sequence = 0
}
