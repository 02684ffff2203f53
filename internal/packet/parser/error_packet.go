package parser

import (
	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
)

// ErrPacket 服务端的 ERR 报文
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_err_packet.html
type ErrPacket struct {
	Code     uint16
	SQLState string
	Message  string
}

// IsErr ERR 报文判定
func IsErr(payload []byte) bool {
	return len(payload) > 0 && payload[0] == packet.ErrHeader
}

func (p *ErrPacket) Parse(payload []byte) error {
	r := encoding.NewReader(payload)

	// int<1>	header	0xFF ERR packet header
	header, err := r.Uint8()
	if err != nil {
		return err
	}
	if header != packet.ErrHeader {
		return errs.NewErrUnexpectedPacket(header)
	}

	// int<2>	error_code
	if p.Code, err = r.Uint16(); err != nil {
		return err
	}

	// string[1]	sql_state_marker	'#'
	// string[5]	sql_state
	// 只有 Protocol41 下才有这六个字节
	rest := r.Rest()
	if len(rest) >= 6 && rest[0] == '#' {
		p.SQLState = string(rest[1:6])
		rest = rest[6:]
	}

	// string<EOF>	error_message
	p.Message = string(rest)
	return nil
}

// ToError 转成对调用方暴露的服务端错误
func (p *ErrPacket) ToError() *errs.SQLError {
	return &errs.SQLError{
		Code:     p.Code,
		SQLState: p.SQLState,
		Message:  p.Message,
	}
}
