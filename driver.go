// Package mysqldriver 是一个纯 Go 实现的 MySQL 客户端驱动，
// 走文本协议，支持压缩、多语句和多结果集。
// 通过 database/sql 使用时驱动名是 meoying-mysql：
//
//	db, err := sql.Open("meoying-mysql", "root:root@tcp(127.0.0.1:3306)/demo")
package mysqldriver

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/ecodeclub/ekit/syncx"
)

// DriverName 注册到 database/sql 的驱动名
const DriverName = "meoying-mysql"

// Driver 实现 database/sql/driver 的入口。
// 无状态，注册一次全局复用
type Driver struct{}

var _ driver.Driver = (*Driver)(nil)
var _ driver.DriverContext = (*Driver)(nil)

func init() {
	sql.Register(DriverName, &Driver{})
}

// 同一个 DSN 会被连接池反复 Open，解析结果缓存起来
var dsnCache syncx.Map[string, *Config]

func (d *Driver) Open(dsn string) (driver.Conn, error) {
	cnt, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return cnt.Connect(context.Background())
}

func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	if cfg, ok := dsnCache.Load(dsn); ok {
		return newConnector(cfg, d), nil
	}
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	dsnCache.Store(dsn, cfg)
	return newConnector(cfg, d), nil
}
