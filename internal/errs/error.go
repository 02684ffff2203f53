package errs

import (
	"errors"
	"fmt"
)

var ErrInvalidConn = errors.New("异常连接")
var ErrPktSync = errors.New("报文乱序")
var ErrPktTooLarge = errors.New("报文过大")
var ErrMalformedPkt = errors.New("报文格式非法")
var ErrBadConnState = errors.New("当前连接状态不允许该操作")
var ErrOldProtocol = errors.New("服务端协议版本过旧")
var ErrLocalInFile = errors.New("不支持 LOCAL INFILE")

// NewErrUnexpectedPacket 在预期 OK、ERR 或者列数量报文的地方读到了别的东西
func NewErrUnexpectedPacket(firstByte byte) error {
	return fmt.Errorf("%w：预期之外的报文标记 0x%02x", ErrMalformedPkt, firstByte)
}

func NewErrUnsupportedAuthPlugin(plugin string) error {
	return fmt.Errorf("不支持的鉴权插件 %s", plugin)
}

func NewErrUnsupportedCharset(charset string) error {
	return fmt.Errorf("不支持的字符集 %s", charset)
}

// SQLError 代表服务端通过 ERR 报文主动返回的错误，
// 区别于协议解析失败这一类 ErrMalformedPkt
type SQLError struct {
	Code     uint16
	SQLState string
	Message  string
}

func (e *SQLError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("Error %d (%s): %s", e.Code, e.SQLState, e.Message)
	}
	return fmt.Sprintf("Error %d: %s", e.Code, e.Message)
}
