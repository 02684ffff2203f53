package mysqldriver

import (
	"context"
	"database/sql/driver"
)

type tx struct {
	conn *conn
}

var _ driver.Tx = (*tx)(nil)

func (t *tx) Commit() error {
	_, err := t.conn.raw.Query(context.Background(), "COMMIT")
	return err
}

func (t *tx) Rollback() error {
	_, err := t.conn.raw.Query(context.Background(), "ROLLBACK")
	return err
}
