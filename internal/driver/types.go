package driver

import (
	"database/sql/driver"
	"io"
)

// Driver 驱动对象要实现的方法集合
type Driver interface {
	driver.Driver
	driver.DriverContext
}

// Connector 连接器对象要实现的方法集合
type Connector interface {
	driver.Connector
}

// Conn 连接对象要实现的方法集合。
// 注意: 文本协议不支持参数绑定，CheckNamedValue 对任何参数都报错
type Conn interface {
	driver.Conn
	driver.Pinger
	driver.QueryerContext
	driver.ExecerContext
	driver.ConnPrepareContext
	driver.ConnBeginTx
	driver.SessionResetter
	driver.Validator
	driver.NamedValueChecker
	io.Closer
}

// Stmt 语句对象要实现的方法集合。
// 注意: NumInput 固定返回 0，带参数的调用到不了执行阶段
type Stmt interface {
	driver.Stmt
	driver.StmtExecContext
	driver.StmtQueryContext
	io.Closer
}

// Rows 行对象要实现的方法集合
type Rows interface {
	driver.Rows
	driver.RowsNextResultSet
	driver.RowsColumnTypeScanType
	driver.RowsColumnTypeDatabaseTypeName
	driver.RowsColumnTypeNullable
	driver.RowsColumnTypeLength
	driver.RowsColumnTypePrecisionScale
	io.Closer
}

// Tx 事务对象要实现的方法集合
type Tx interface {
	driver.Tx
}

// Result 结果对象要实现的方法集合
type Result interface {
	driver.Result
}
