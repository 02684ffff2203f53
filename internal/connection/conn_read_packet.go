package connection

import (
	"fmt"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet"
)

// readPacket 读取一个完整的逻辑报文。
// 物理帧装满 MaxPacketSize 说明后面还有延续帧，要拼到一起；
// 每一帧的序号都必须严格等于期望值，差一个就是乱序。
// 传输层出错时连接已经救不回来了，直接断开
func (c *Conn) readPacket() ([]byte, error) {
	var prevData []byte
	for {
		frame, err := c.transport.readFrame()
		if err != nil {
			c.cleanup()
			return nil, fmt.Errorf("%w，读取报文失败 %w", errs.ErrInvalidConn, err)
		}

		// packet length [24 bit]
		pktLen := int(uint32(frame[0]) | uint32(frame[1])<<8 | uint32(frame[2])<<16)

		// check packet sync [8 bit]
		// 客户端清楚命令从哪里开始，所以这里的期望值是严格的
		if frame[3] != c.sequence {
			c.cleanup()
			return nil, errs.ErrPktSync
		}
		c.sequence++

		// 长度为 0 的帧是在终结一个恰好填满 MaxPacketSize 的报文
		if pktLen == 0 {
			if prevData == nil {
				c.cleanup()
				return nil, fmt.Errorf("%w，当前报文长度为 0，但未读到前面报文", errs.ErrInvalidConn)
			}
			return prevData, nil
		}

		body := frame[4:]

		// 不满一帧说明逻辑报文到这里结束
		if pktLen < packet.MaxPacketSize {
			if prevData == nil {
				return body, nil
			}
			return append(prevData, body...), nil
		}
		prevData = append(prevData, body...)
	}
}
