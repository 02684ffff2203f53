package mysqldriver

import (
	"errors"

	"github.com/meoying/mysqldriver/internal/errs"
)

// SQLError 服务端通过 ERR 报文返回的错误，
// 用 errors.As 可以拿到错误码和 SQLState
type SQLError = errs.SQLError

// 这些错误都表示协议或者用法层面出了问题，和服务端返回的 SQLError 区分开
var (
	ErrInvalidConn  = errs.ErrInvalidConn
	ErrPktSync      = errs.ErrPktSync
	ErrPktTooLarge  = errs.ErrPktTooLarge
	ErrMalformedPkt = errs.ErrMalformedPkt
	ErrBadConnState = errs.ErrBadConnState
	ErrOldProtocol  = errs.ErrOldProtocol
	ErrLocalInFile  = errs.ErrLocalInFile
)

// ErrPlaceholder 文本协议不支持占位符参数，
// 需要参数绑定的场景请先在业务侧完成插值
var ErrPlaceholder = errors.New("不支持占位符参数")
