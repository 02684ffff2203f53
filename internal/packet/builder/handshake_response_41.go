package builder

import (
	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
)

// HandshakeResponse41 客户端对服务端问候的应答。
// 前四个字节留给报文头，由连接层在发送时填充
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_response.html#sect_protocol_connection_phase_packets_protocol_handshake_response41
type HandshakeResponse41 struct {
	ClientFlags   flags.CapabilityFlags
	MaxPacketSize uint32
	CharacterSet  uint8
	Username      string
	AuthResponse  []byte
	Database      string
}

func (b *HandshakeResponse41) Build() []byte {
	p := make([]byte, 4, 128)

	// int<4>	client_flag	Capabilities Flags, CLIENT_PROTOCOL_41 always set
	p = append(p, encoding.FixedLengthInteger(uint64(b.ClientFlags), 4)...)

	// int<4>	max_packet_size	maximum packet size
	// 客户端愿意收的最大报文长度
	p = append(p, encoding.FixedLengthInteger(uint64(b.MaxPacketSize), 4)...)

	// int<1>	character_set	client charset a_protocol_character_set, only the lower 8-bits
	p = append(p, b.CharacterSet)

	// string[23]	filler	全 0 占位
	p = append(p, make([]byte, 23)...)

	// string<NUL>	username	login user name
	p = append(p, encoding.NullTerminatedString(b.Username)...)

	// int<1>	auth_response_length + $length auth_response
	// 挑战应答最长也就 20 字节，一个字节的长度前缀够用
	p = append(p, byte(len(b.AuthResponse)))
	p = append(p, b.AuthResponse...)

	// string<NUL>	database	initial database for the connection
	// 跟随 ClientConnectWithDB 一起出现，空库名也要带结尾 00
	if b.ClientFlags.Has(flags.ClientConnectWithDB) {
		p = append(p, encoding.NullTerminatedString(b.Database)...)
	}

	return p
}
