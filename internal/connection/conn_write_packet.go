package connection

import (
	"fmt"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/builder"
)

// writePacket 把一个逻辑报文按物理帧写出去。
// data 的前 4 个字节是给帧头预留的，builder 构造的报文都会留好。
// 超过 MaxPacketSize 的载荷切成多帧；
// 恰好填满的报文会自然落进一个长度为 0 的收尾帧，
// 这样对端才分得清"后面还有"和"正好读完"
func (c *Conn) writePacket(data []byte) error {
	pktLen := len(data) - 4

	if pktLen > c.maxAllowedPacket() {
		return fmt.Errorf("%w，最大长度 %d，报文长度 %d",
			errs.ErrPktTooLarge,
			c.maxAllowedPacket(), pktLen)
	}

	for {
		var size int
		if pktLen >= packet.MaxPacketSize {
			data[0] = 0xff
			data[1] = 0xff
			data[2] = 0xff
			size = packet.MaxPacketSize
		} else {
			data[0] = byte(pktLen)
			data[1] = byte(pktLen >> 8)
			data[2] = byte(pktLen >> 16)
			size = pktLen
		}
		data[3] = c.sequence

		if err := c.transport.writeFrame(data[:4+size]); err != nil {
			// 写失败之后序号已经对不上了，只能断开
			c.cleanup()
			return fmt.Errorf("%w，写入报文失败 %w", errs.ErrInvalidConn, err)
		}
		c.sequence++
		if size != packet.MaxPacketSize {
			return nil
		}

		// 已发送的部分让出来给下一帧的帧头复用
		pktLen -= size
		data = data[size:]
	}
}

// writeCommand 新命令的第一个报文。
// 序号计数在 MySQL 里是命令内部独立的，所以这里清零，压缩层的计数也一起清
func (c *Conn) writeCommand(cmd packet.Command, payload []byte) error {
	c.sequence = 0
	c.transport.reset()
	b := builder.CommandPacket{Command: cmd, Payload: payload}
	return c.writePacket(b.Build())
}
