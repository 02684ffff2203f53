package testsuite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/stretchr/testify/require"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/meoying/mysqldriver"
)

const (
	// DSNTmpl 被测驱动的连接串模板，%s 处填库名，后面可以追加参数
	DSNTmpl = "root:root@tcp(localhost:13306)/%s"
	// DriverName 被测驱动
	DriverName = "meoying-mysql"
	// ReferenceDriverName 参照驱动，查询结果要和它完全一致
	ReferenceDriverName = "mysql"
)

type Order struct {
	UserId  int
	OrderId int64
	Content string
	Amount  float64
}

type sqlInfo struct {
	query string
	// 执行 Exec 后返回的结果
	rowsAffected int64
	lastInsertId int64
}

// WaitForMySQLSetup 等待 MySQL 就绪并返回一个可用的 *sql.DB 对象
func WaitForMySQLSetup(driverName, dsn string) *sql.DB {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		panic(err)
	}
	const maxInterval = 10 * time.Second
	const maxRetries = 10
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		panic(err)
	}
	const timeout = 5 * time.Second
	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			break
		}
		next, ok := strategy.Next()
		if !ok {
			panic("WaitForMySQLSetup 重试失败......")
		}
		time.Sleep(next)
	}
	return sqlDB
}

func CreateDatabases(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name))
		require.NoError(t, err, fmt.Errorf("创建库=%s失败", name))
	}
}

func CreateTables(t *testing.T, db *sql.DB, tableNames ...string) {
	t.Helper()
	const tableTemplate = "CREATE TABLE IF NOT EXISTS `%s` " +
		"(" +
		"user_id INT NOT NULL," +
		"order_id BIGINT NOT NULL," +
		"content TEXT," +
		"amount DOUBLE," +
		"PRIMARY KEY (user_id)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;"
	if len(tableNames) == 0 {
		tableNames = append(tableNames, "order")
	}
	for _, name := range tableNames {
		_, err := db.Exec(fmt.Sprintf(tableTemplate, name))
		require.NoError(t, err, fmt.Errorf("创建表=%s失败", name))
	}
}

func ClearTables(t *testing.T, db *sql.DB, tableNames ...string) {
	t.Helper()
	if len(tableNames) == 0 {
		tableNames = append(tableNames, "order")
	}
	for _, name := range tableNames {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM `%s`;", name))
		require.NoError(t, err)
	}
}

func execSQL(t *testing.T, db *sql.DB, sqls []string) {
	t.Helper()
	for _, vsql := range sqls {
		_, err := db.Exec(vsql)
		require.NoError(t, err)
	}
}

func getRowsFromTable(t *testing.T, db *sql.DB, ids []int64) *sql.Rows {
	t.Helper()
	idStr := make([]string, 0, len(ids))
	for _, id := range ids {
		idStr = append(idStr, strconv.FormatInt(id, 10))
	}
	query := fmt.Sprintf("SELECT `user_id`, `order_id`, `content`, `amount` FROM `order` WHERE `user_id` in (%s)", strings.Join(idStr, ","))
	rows, err := db.Query(query)
	require.NoError(t, err)
	return rows
}

func getOrdersFromRows(t *testing.T, rows *sql.Rows) []Order {
	t.Helper()
	res := make([]Order, 0, 2)
	for rows.Next() {
		order := Order{}
		err := rows.Scan(&order.UserId, &order.OrderId, &order.Content, &order.Amount)
		require.NoError(t, err)
		res = append(res, order)
	}
	require.NoError(t, rows.Close())
	return res
}
