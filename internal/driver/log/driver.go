package log

import (
	"database/sql/driver"

	driver2 "github.com/meoying/mysqldriver/internal/driver"
)

var _ driver2.Driver = &driverWrapper{}

type driverWrapper struct {
	driver driver2.Driver
	logger logger
}

func newDriver(d driver2.Driver, l logger) *driverWrapper {
	return &driverWrapper{
		driver: d,
		logger: l,
	}
}

func (d *driverWrapper) Open(name string) (driver.Conn, error) {
	conn, err := d.driver.Open(name)
	if err != nil {
		d.logger.Error("打开连接失败", "错误", err)
		return nil, err
	}
	cc, ok := conn.(driver2.Conn)
	if !ok {
		return nil, ErrUnsupportedConn
	}
	d.logger.Debug("打开连接成功")
	return &connWrapper{conn: cc, logger: d.logger}, nil
}

func (d *driverWrapper) OpenConnector(name string) (driver.Connector, error) {
	connector, err := d.driver.OpenConnector(name)
	if err != nil {
		d.logger.Error("打开连接器失败", "错误", err)
		return nil, err
	}
	d.logger.Debug("打开连接器成功")
	return &connectorWrapper{connector: connector, driver: d.driver, logger: d.logger}, nil
}
