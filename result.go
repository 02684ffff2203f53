package mysqldriver

import "database/sql/driver"

type result struct {
	affected int64
	insertID int64
}

var _ driver.Result = (*result)(nil)

func (r *result) LastInsertId() (int64, error) {
	return r.insertID, nil
}

func (r *result) RowsAffected() (int64, error) {
	return r.affected, nil
}
