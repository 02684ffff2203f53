// Package log 给驱动对象包一层日志装饰器。
// 所有 database/sql/driver 层面的调用都会以 Debug 级别记录，
// 失败则升级为 Error，方便排查驱动和服务端之间的交互问题
package log

import (
	"database/sql/driver"
	"log/slog"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

// logger 本包用到的方法集合，*slog.Logger 天然满足
type logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

type ConnectorOptions struct {
	l *slog.Logger
}

type Option func(*ConnectorOptions)

func WithLogger(l *slog.Logger) Option {
	return func(opts *ConnectorOptions) {
		opts.l = l
	}
}

// NewConnector 把底层驱动包上日志装饰器之后打开 dsn，
// 返回的 Connector 交给 sql.OpenDB 使用
func NewConnector(d driver2.Driver, dsn string, opts ...Option) (driver.Connector, error) {
	options := &ConnectorOptions{
		l: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return newDriver(d, options.l).OpenConnector(dsn)
}
