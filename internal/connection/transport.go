package connection

import (
	"io"
	"net"
	"time"
)

// transport 负责物理帧的收发。
// 明文实现直接读写 socket；压缩协商成功之后换成压缩实现，
// 在每个物理帧外面再包一层压缩帧。
// 上层的分帧、重组和序号校验逻辑不感知这次替换
type transport interface {
	// readFrame 读取一个完整的物理帧，返回 4 字节帧头加载荷
	readFrame() ([]byte, error)
	// writeFrame 写出一个完整的物理帧，data 的前 4 字节已经是填好的帧头
	writeFrame(data []byte) error
	// reset 新命令开始时清零自己的序号计数
	reset()
}

type plainTransport struct {
	conn         net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func newPlainTransport(conn net.Conn, readTimeout, writeTimeout time.Duration) *plainTransport {
	return &plainTransport{
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (t *plainTransport) readFrame() ([]byte, error) {
	header := make([]byte, 4)
	if err := t.readFull(header); err != nil {
		return nil, err
	}
	length := int(uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16)
	frame := make([]byte, 4+length)
	copy(frame, header)
	if length > 0 {
		if err := t.readFull(frame[4:]); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func (t *plainTransport) writeFrame(data []byte) error {
	return t.write(data)
}

func (t *plainTransport) reset() {}

// readFull 凑满 buf 为止的底层读，每次读之前刷新读截止时间
func (t *plainTransport) readFull(buf []byte) error {
	if t.readTimeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return err
		}
	}
	_, err := io.ReadFull(t.conn, buf)
	return err
}

// write 原始字节写出，压缩层也靠它落盘
func (t *plainTransport) write(data []byte) error {
	if t.writeTimeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
			return err
		}
	}
	n, err := t.conn.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	return err
}
