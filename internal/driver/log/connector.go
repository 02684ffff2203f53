package log

import (
	"context"
	"database/sql/driver"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

var _ driver2.Connector = &connectorWrapper{}

type connectorWrapper struct {
	connector driver.Connector
	driver    driver2.Driver
	logger    logger
}

func (c *connectorWrapper) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := c.connector.Connect(ctx)
	if err != nil {
		c.logger.Error("建立连接失败", "错误", err)
		return nil, err
	}
	cc, ok := conn.(driver2.Conn)
	if !ok {
		return nil, ErrUnsupportedConn
	}
	c.logger.Debug("建立连接成功")
	return &connWrapper{conn: cc, logger: c.logger}, nil
}

func (c *connectorWrapper) Driver() driver.Driver {
	return c.driver
}
