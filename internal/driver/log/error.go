package log

import "errors"

// 被包装的对象必须实现本驱动承诺的完整方法集合，
// 缺接口说明包错了驱动，直接报错而不是静默降级
var (
	ErrUnsupportedConn = errors.New("被包装的连接缺少驱动要求的接口")
	ErrUnsupportedStmt = errors.New("被包装的语句缺少驱动要求的接口")
	ErrUnsupportedRows = errors.New("被包装的结果行缺少驱动要求的接口")
)
