package packet

const (
	// MaxPacketSize 单一物理帧载荷的最大长度
	MaxPacketSize      = 1<<24 - 1
	MinProtocolVersion = 10
)

// Command 命令阶段请求报文的第一个字节
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_command_phase.html
type Command byte

const (
	CommandQuit            Command = 0x01
	CommandInitDB          Command = 0x02
	CommandQuery           Command = 0x03
	CommandPing            Command = 0x0e
	CommandResetConnection Command = 0x1f
)

// 服务端响应报文的第一个字节，用来区分报文种类
const (
	OKHeader          byte = 0x00
	LocalInFileHeader byte = 0xfb
	EOFHeader         byte = 0xfe
	ErrHeader         byte = 0xff
)

// NullValue 文本协议结果集里 NULL 值的标记，
// 和 Length-Encoded Integer 的 NULL 哨兵是同一个字节
const NullValue byte = 0xfb
