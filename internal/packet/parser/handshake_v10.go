package parser

import (
	"bytes"
	"fmt"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
)

// HandshakeV10 服务端的问候报文。
// 建立 TCP 连接之后由服务端先发，客户端从里面拿到挑战随机数和服务端支持的功能特性
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_packets_protocol_handshake_v10.html
type HandshakeV10 struct {
	ProtocolVersion byte
	ServerVersion   string
	ConnectionID    uint32
	// AuthPluginData 两段拼接之后的完整挑战随机数，一般是 20 字节
	AuthPluginData []byte
	CharacterSet   byte
	StatusFlags    flags.SeverStatus
	Capabilities   flags.CapabilityFlags
	AuthPluginName string
}

func (h *HandshakeV10) Parse(payload []byte) error {
	r := encoding.NewReader(payload)

	// int<1>	protocol version	Always 10
	version, err := r.Uint8()
	if err != nil {
		return err
	}
	if version < packet.MinProtocolVersion {
		return fmt.Errorf("%w：得到 %d，至少要 %d",
			errs.ErrOldProtocol, version, packet.MinProtocolVersion)
	}
	h.ProtocolVersion = version

	// string<NUL>	server version	human-readable status information
	serverVersion, err := r.NullTerminatedBytes()
	if err != nil {
		return err
	}
	h.ServerVersion = string(serverVersion)

	// int<4>	thread id	a.k.a. connection id
	h.ConnectionID, err = r.Uint32()
	if err != nil {
		return err
	}

	// string[8]	auth-plugin-data-part-1	first 8 bytes of the plugin provided data (scramble)
	part1, err := r.Bytes(8)
	if err != nil {
		return err
	}
	h.AuthPluginData = append([]byte{}, part1...)

	// int<1>	filler	0x00 byte, terminating the first part of a scramble
	if err = r.Skip(1); err != nil {
		return err
	}

	// int<2>	capability_flags_1	The lower 2 bytes of the Capabilities Flags
	capLow, err := r.Uint16()
	if err != nil {
		return err
	}
	h.Capabilities = flags.CapabilityFlags(capLow)

	// 特别老的服务端到这里就没了
	if r.Remaining() == 0 {
		return nil
	}

	// int<1>	character_set	default server a_protocol_character_set, only the lower 8-bits
	if h.CharacterSet, err = r.Uint8(); err != nil {
		return err
	}

	// int<2>	status_flags	SERVER_STATUS_flags_enum
	status, err := r.Uint16()
	if err != nil {
		return err
	}
	h.StatusFlags = flags.SeverStatus(status)

	// int<2>	capability_flags_2	The upper 2 bytes of the Capabilities Flags
	capHigh, err := r.Uint16()
	if err != nil {
		return err
	}
	h.Capabilities |= flags.CapabilityFlags(capHigh) << 16

	// int<1>	auth_plugin_data_len	length of the combined auth_plugin_data (scramble)
	// 只在 ClientPluginAuth 下有意义，固定 21，这里不依赖它
	if _, err = r.Uint8(); err != nil {
		return err
	}

	// string[10]	reserved	reserved. All 0s.
	if err = r.Skip(10); err != nil {
		return err
	}

	if h.Capabilities.Has(flags.ClientSecureConnection) {
		// $length	auth-plugin-data-part-2
		// 协议说长度是 max(13, auth_plugin_data_len - 8)，
		// 实际上就是 12 字节 scramble 再加一个 00 结尾
		part2, err := r.Bytes(12)
		if err != nil {
			return err
		}
		h.AuthPluginData = append(h.AuthPluginData, part2...)
		if r.Remaining() > 0 {
			_ = r.Skip(1)
		}
	}

	if h.Capabilities.Has(flags.ClientPluginAuth) {
		// NULL	auth_plugin_name	name of the auth_method that the auth_plugin_data belongs to
		// 有的服务端版本漏掉结尾的 00，两种都认
		rest := r.Rest()
		if idx := bytes.IndexByte(rest, 0x00); idx >= 0 {
			rest = rest[:idx]
		}
		h.AuthPluginName = string(rest)
	}
	return nil
}
