package parser

import (
	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
)

// OKPacket OK 一类的报文，包括历史上独立存在的 EOF 形态。
// 0xFE 开头并且载荷很短的是老式 EOF，只带警告数和状态位；
// 其余按完整 OK 布局解析。OK 和 EOF 的判定历史上就是混在一起的，
// 这里保留同一套规则，不做"修正"
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_ok_packet.html
type OKPacket struct {
	Header       byte
	AffectedRows uint64
	LastInsertID uint64
	StatusFlags  flags.SeverStatus
	Warnings     uint16
	Info         string
}

// IsOK 命令响应首包语境下的判定：0x00 开头，或者短 0xFE，都算 OK 一类
func IsOK(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	return payload[0] == packet.OKHeader || IsEOF(payload)
}

// IsEOF 行数据语境下的终结包判定。
// 0x00 开头的可能是首列为空串的数据行，所以只认短 0xFE
func IsEOF(payload []byte) bool {
	return len(payload) > 0 && payload[0] == packet.EOFHeader && len(payload) < 9
}

func (p *OKPacket) Parse(payload []byte) error {
	r := encoding.NewReader(payload)

	header, err := r.Uint8()
	if err != nil {
		return err
	}
	p.Header = header

	if header != packet.OKHeader && header != packet.EOFHeader {
		return errs.NewErrUnexpectedPacket(header)
	}

	if IsEOF(payload) {
		// 老式 EOF：int<2> warnings + int<2> status_flags
		// 4.1 之前连这四个字节都没有
		if r.Remaining() >= 4 {
			if p.Warnings, err = r.Uint16(); err != nil {
				return err
			}
			status, err := r.Uint16()
			if err != nil {
				return err
			}
			p.StatusFlags = flags.SeverStatus(status)
		}
		return nil
	}

	// int<lenenc>	affected_rows
	affected, isNull, err := r.LengthEncodedInteger()
	if err != nil {
		return err
	}
	if isNull {
		return errs.NewErrUnexpectedPacket(packet.NullValue)
	}
	p.AffectedRows = affected

	// int<lenenc>	last_insert_id
	lastInsertID, isNull, err := r.LengthEncodedInteger()
	if err != nil {
		return err
	}
	if isNull {
		return errs.NewErrUnexpectedPacket(packet.NullValue)
	}
	p.LastInsertID = lastInsertID

	// int<2>	status_flags	SERVER_STATUS_flags_enum
	if r.Remaining() >= 2 {
		status, err := r.Uint16()
		if err != nil {
			return err
		}
		p.StatusFlags = flags.SeverStatus(status)
	}

	// int<2>	warnings	number of warnings
	if r.Remaining() >= 2 {
		if p.Warnings, err = r.Uint16(); err != nil {
			return err
		}
	}

	// string<EOF>	info	human readable status information
	// 没有协商 SESSION_TRACK，info 就是余下的全部字节
	p.Info = string(r.Rest())
	return nil
}
