package connection

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/meoying/mysqldriver/internal/auth"
	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/builder"
	"github.com/meoying/mysqldriver/internal/packet/parser"
)

// handshake 完成一次完整的握手，一条连接只会发生一次。
// 服务端先发问候，客户端算出挑战应答并回应，服务端以 OK 或者 ERR 收尾
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase.html
func (c *Conn) handshake() error {
	payload, err := c.readPacket()
	if err != nil {
		return err
	}

	// 服务端可能直接拒绝，比如连接数超限
	if parser.IsErr(payload) {
		var errPkt parser.ErrPacket
		if err := errPkt.Parse(payload); err != nil {
			return err
		}
		return errPkt.ToError()
	}

	var greeting parser.HandshakeV10
	if err := greeting.Parse(payload); err != nil {
		return err
	}

	if greeting.AuthPluginName != "" && greeting.AuthPluginName != auth.PluginName {
		return errs.NewErrUnsupportedAuthPlugin(greeting.AuthPluginName)
	}

	// 功能集合 = 我方基线(按配置带上压缩) ∩ 服务端广播
	requested := baseCapabilities()
	if c.opts.Compress {
		requested |= flags.NewCapabilityFlags(flags.ClientCompress)
	}
	agreed := requested.And(greeting.Capabilities)
	if !agreed.Has(flags.ClientProtocol41) {
		return fmt.Errorf("%w：服务端不支持 Protocol41", errs.ErrOldProtocol)
	}

	resp := builder.HandshakeResponse41{
		ClientFlags:   agreed,
		MaxPacketSize: packet.MaxPacketSize,
		CharacterSet:  c.collation,
		Username:      c.opts.User,
		AuthResponse:  auth.Scramble(greeting.AuthPluginData, c.opts.Password),
		Database:      c.opts.Database,
	}
	if err := c.writePacket(resp.Build()); err != nil {
		return err
	}

	reply, err := c.readPacket()
	if err != nil {
		return err
	}
	switch {
	case parser.IsErr(reply):
		// 鉴权失败走这里
		var errPkt parser.ErrPacket
		if err := errPkt.Parse(reply); err != nil {
			return err
		}
		return errPkt.ToError()
	case parser.IsOK(reply):
		var ok parser.OKPacket
		if err := ok.Parse(reply); err != nil {
			return err
		}
		c.captureResult(&ok)
		c.server = ServerInfo{
			ConnectionID: greeting.ConnectionID,
			Version:      greeting.ServerVersion,
			Protocol:     greeting.ProtocolVersion,
			CharacterSet: greeting.CharacterSet,
			Capabilities: agreed,
		}
		// 压缩从握手完成之后的第一个报文开始生效
		if agreed.Has(flags.ClientCompress) {
			c.transport = newCompressedTransport(c.transport.(*plainTransport))
			c.logger.Debug("压缩协议已启用", slog.String("地址", c.opts.Address))
		}
		return nil
	case len(reply) > 0 && reply[0] == packet.EOFHeader:
		// AuthSwitchRequest：服务端要求换一个鉴权插件，不在支持范围内
		return errs.NewErrUnsupportedAuthPlugin(authSwitchPlugin(reply))
	default:
		return errs.NewErrUnexpectedPacket(reply[0])
	}
}

// baseCapabilities 客户端的基线功能集合
func baseCapabilities() flags.CapabilityFlags {
	return flags.NewCapabilityFlags(
		flags.ClientLongPassword,
		flags.ClientConnectWithDB,
		flags.ClientProtocol41,
		flags.ClientSecureConnection,
		flags.ClientMultiStatements,
		flags.ClientMultiResults,
	)
}

// authSwitchPlugin 从 AuthSwitchRequest 里抠出插件名，只用于报错
func authSwitchPlugin(payload []byte) string {
	rest := payload[1:]
	if idx := bytes.IndexByte(rest, 0x00); idx >= 0 {
		rest = rest[:idx]
	}
	return string(rest)
}
