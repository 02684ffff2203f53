package mysqldriver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/meoying/mysqldriver/internal/connection"
)

type connector struct {
	cfg    *Config
	driver *Driver
}

var _ driver.Connector = (*connector)(nil)

func newConnector(cfg *Config, d *Driver) *connector {
	return &connector{cfg: cfg, driver: d}
}

func (c *connector) Connect(ctx context.Context) (driver.Conn, error) {
	raw, err := connection.Open(ctx, c.cfg.connOptions())
	if err != nil {
		return nil, err
	}
	return newConn(raw), nil
}

func (c *connector) Driver() driver.Driver {
	if c.driver != nil {
		return c.driver
	}
	return &Driver{}
}

// ConnectorBuilder 根据配置信息构建 driver.Connector 对象或者 *sql.DB 对象
type ConnectorBuilder struct {
	config *Config
}

func (c *ConnectorBuilder) LoadConfigFile(path string) error {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

func (c *ConnectorBuilder) SetConfig(cfg Config) {
	cc := cfg
	c.config = &cc
}

// BuildDB 根据配置直接构建出 *sql.DB 对象
func (c *ConnectorBuilder) BuildDB() (*sql.DB, error) {
	cc, err := c.Build()
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(cc), nil
}

// Build 根据配置构建出 Connector 对象
func (c *ConnectorBuilder) Build() (driver.Connector, error) {
	if c.config == nil {
		return nil, fmt.Errorf("未设置配置信息")
	}
	return newConnector(c.config, nil), nil
}
