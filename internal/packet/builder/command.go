package builder

import (
	"github.com/meoying/mysqldriver/internal/packet"
)

// CommandPacket 命令阶段的请求报文：一个字节的命令码加上命令自己的载荷。
// 前四个字节同样留给报文头
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_command_phase.html
type CommandPacket struct {
	Command packet.Command
	// Payload COM_QUERY 下就是 SQL 文本，COM_PING 这类命令没有载荷
	Payload []byte
}

func (b *CommandPacket) Build() []byte {
	p := make([]byte, 4, 5+len(b.Payload))

	// int<1>	command
	p = append(p, byte(b.Command))

	// string<EOF>	命令载荷
	p = append(p, b.Payload...)

	return p
}
