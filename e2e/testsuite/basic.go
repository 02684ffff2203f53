package testsuite

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// BasicTestSuite 基础测试集，覆盖最简单的增删改查。
// 查询类用例会把结果和参照驱动跑出来的结果做对比，
// 两边必须完全一致
type BasicTestSuite struct {
	suite.Suite
	db *sql.DB
	// ref 参照驱动打开的同一个库
	ref *sql.DB
}

func (s *BasicTestSuite) SetDB(db *sql.DB) {
	s.db = db
}

func (s *BasicTestSuite) SetReferenceDB(db *sql.DB) {
	s.ref = db
}

func (s *BasicTestSuite) TearDownTest() {
	ClearTables(s.T(), s.db)
}

// TestSelect 测试查询语句
func (s *BasicTestSuite) TestSelect() {
	t := s.T()
	testcases := []struct {
		name   string
		before func(t *testing.T)
		query  string
		after  func(t *testing.T, rows *sql.Rows)
	}{
		{
			name: "简单查询",
			before: func(t *testing.T) {
				execSQL(t, s.db, []string{
					"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'content1',1.1), (2,4,'content4',1.3);",
				})
			},
			query: "SELECT `user_id`,`order_id`,`content`,`amount` FROM `order` WHERE (`user_id` = 1) OR (`user_id` = 2);",
			after: func(t *testing.T, rows *sql.Rows) {
				res := getOrdersFromRows(t, rows)
				assert.ElementsMatch(t, []Order{
					{UserId: 1, OrderId: 1, Content: "content1", Amount: 1.1},
					{UserId: 2, OrderId: 4, Content: "content4", Amount: 1.3},
				}, res)
			},
		},
		{
			name:   "空结果集",
			before: func(t *testing.T) {},
			query:  "SELECT `user_id`,`order_id`,`content`,`amount` FROM `order` WHERE `user_id` = 999;",
			after: func(t *testing.T, rows *sql.Rows) {
				res := getOrdersFromRows(t, rows)
				assert.Empty(t, res)
			},
		},
		{
			name: "NULL值",
			before: func(t *testing.T) {
				execSQL(t, s.db, []string{
					"INSERT INTO `order` (`user_id`,`order_id`) VALUES (3,30);",
				})
			},
			query: "SELECT `content`,`amount` FROM `order` WHERE `user_id` = 3;",
			after: func(t *testing.T, rows *sql.Rows) {
				require.True(t, rows.Next())
				var content sql.NullString
				var amount sql.NullFloat64
				require.NoError(t, rows.Scan(&content, &amount))
				assert.False(t, content.Valid)
				assert.False(t, amount.Valid)
				require.NoError(t, rows.Close())
			},
		},
		{
			name: "聚合函数AVG",
			before: func(t *testing.T) {
				execSQL(t, s.db, []string{
					"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'content1',6.9),(2,4,'content4',0.1),(3,1,'content1',7.1),(4,1,'content1',9.9);",
				})
			},
			query: "SELECT AVG(`amount`) FROM `order`;",
			after: func(t *testing.T, rows *sql.Rows) {
				require.True(t, rows.Next())
				var avg sql.NullFloat64
				require.NoError(t, rows.Scan(&avg))
				assert.True(t, avg.Valid)
				assert.InDelta(t, 6.0, avg.Float64, 0.001)
				require.NoError(t, rows.Close())
			},
		},
		{
			name: "中文内容",
			before: func(t *testing.T) {
				execSQL(t, s.db, []string{
					"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (5,50,'你好，世界',1.0);",
				})
			},
			query: "SELECT `content` FROM `order` WHERE `user_id` = 5;",
			after: func(t *testing.T, rows *sql.Rows) {
				require.True(t, rows.Next())
				var content string
				require.NoError(t, rows.Scan(&content))
				assert.Equal(t, "你好，世界", content)
				require.NoError(t, rows.Close())
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tc.before(t)
			rows, err := s.db.Query(tc.query)
			require.NoError(t, err)
			tc.after(t, rows)
			ClearTables(t, s.db)
		})
	}
}

// TestSelectAgainstReference 同一条查询在被测驱动和参照驱动上结果必须一致
func (s *BasicTestSuite) TestSelectAgainstReference() {
	t := s.T()
	execSQL(t, s.db, []string{
		"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'content1',1.1),(2,4,'content4',1.3),(3,30,NULL,NULL);",
	})
	query := "SELECT `user_id`,`order_id`,`content`,`amount` FROM `order` WHERE `content` IS NOT NULL ORDER BY `user_id`;"

	rows, err := s.db.Query(query)
	require.NoError(t, err)
	got := getOrdersFromRows(t, rows)

	refRows, err := s.ref.Query(query)
	require.NoError(t, err)
	want := getOrdersFromRows(t, refRows)

	assert.Equal(t, want, got)
}

// TestExec 测试写入语句的 RowsAffected
func (s *BasicTestSuite) TestExec() {
	t := s.T()
	testcases := []struct {
		name   string
		before func(t *testing.T)
		info   sqlInfo
	}{
		{
			name:   "插入单行",
			before: func(t *testing.T) {},
			info: sqlInfo{
				query:        "INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'content1',1.1);",
				rowsAffected: 1,
			},
		},
		{
			name: "更新多行",
			before: func(t *testing.T) {
				execSQL(t, s.db, []string{
					"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'a',1.0),(2,2,'b',2.0);",
				})
			},
			info: sqlInfo{
				query:        "UPDATE `order` SET `content` = 'c' WHERE `user_id` IN (1,2);",
				rowsAffected: 2,
			},
		},
		{
			name:   "删除零行",
			before: func(t *testing.T) {},
			info: sqlInfo{
				query:        "DELETE FROM `order` WHERE `user_id` = 12345;",
				rowsAffected: 0,
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tc.before(t)
			res, err := s.db.Exec(tc.info.query)
			require.NoError(t, err)
			affected, err := res.RowsAffected()
			require.NoError(t, err)
			assert.Equal(t, tc.info.rowsAffected, affected)
			ClearTables(t, s.db)
		})
	}
}

// TestLastInsertId 自增主键
func (s *BasicTestSuite) TestLastInsertId() {
	t := s.T()
	execSQL(t, s.db, []string{
		"CREATE TABLE IF NOT EXISTS `seq` (`id` BIGINT AUTO_INCREMENT, `v` VARCHAR(16), PRIMARY KEY(`id`)) ENGINE=InnoDB;",
		"TRUNCATE TABLE `seq`;",
	})
	defer execSQL(t, s.db, []string{"DROP TABLE `seq`;"})

	res, err := s.db.Exec("INSERT INTO `seq` (`v`) VALUES ('a');")
	require.NoError(t, err)
	first, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	res, err = s.db.Exec("INSERT INTO `seq` (`v`) VALUES ('b');")
	require.NoError(t, err)
	second, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

// TestQueryRowNoRows 零行结果走 sql.ErrNoRows，而不是报协议错误
func (s *BasicTestSuite) TestQueryRowNoRows() {
	t := s.T()
	var v int64
	err := s.db.QueryRow("SELECT `order_id` FROM `order` WHERE `user_id` = 999;").Scan(&v)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

// TestServerError 服务端报错要还原成错误码，并且连接还能继续用
func (s *BasicTestSuite) TestServerError() {
	t := s.T()
	_, err := s.db.Exec("INSERT INTO `no_such_table` (`a`) VALUES (1);")
	require.Error(t, err)
	// 1146 = ER_NO_SUCH_TABLE
	assert.Contains(t, err.Error(), "1146")

	// 报错之后同一个池子里的连接还能正常查询
	var one int
	require.NoError(t, s.db.QueryRow("SELECT 1;").Scan(&one))
	assert.Equal(t, 1, one)
}

// TestColumnTypes 列元数据
func (s *BasicTestSuite) TestColumnTypes() {
	t := s.T()
	execSQL(t, s.db, []string{
		"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'content1',1.1);",
	})
	rows, err := s.db.Query("SELECT `user_id`,`order_id`,`content`,`amount` FROM `order`;")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, rows.Close())
	}()

	types, err := rows.ColumnTypes()
	require.NoError(t, err)
	require.Len(t, types, 4)

	assert.Equal(t, "user_id", types[0].Name())
	assert.Equal(t, "INT", types[0].DatabaseTypeName())
	nullable, ok := types[0].Nullable()
	assert.True(t, ok)
	assert.False(t, nullable)
	assert.Equal(t, reflect.TypeOf(int64(0)), types[0].ScanType())

	assert.Equal(t, "BIGINT", types[1].DatabaseTypeName())

	assert.Equal(t, "TEXT", types[2].DatabaseTypeName())
	nullable, ok = types[2].Nullable()
	assert.True(t, ok)
	assert.True(t, nullable)

	assert.Equal(t, "DOUBLE", types[3].DatabaseTypeName())
	assert.Equal(t, reflect.TypeOf(float64(0)), types[3].ScanType())
}

// TestPing 探活走的是独立的命令码
func (s *BasicTestSuite) TestPing() {
	t := s.T()
	require.NoError(t, s.db.PingContext(context.Background()))
}
