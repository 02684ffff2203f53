package testsuite

import (
	"database/sql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MultiResultTestSuite 多语句命令和多结果集
type MultiResultTestSuite struct {
	suite.Suite
	db *sql.DB
}

func (s *MultiResultTestSuite) SetDB(db *sql.DB) {
	s.db = db
}

func (s *MultiResultTestSuite) TearDownTest() {
	ClearTables(s.T(), s.db)
}

// TestTwoSelects 两条 SELECT 产生两个结果集，列数还不一样
func (s *MultiResultTestSuite) TestTwoSelects() {
	t := s.T()
	rows, err := s.db.Query("SELECT 1 AS a; SELECT 2 AS b, 3 AS c;")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, rows.Close())
	}()

	cols, err := rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, cols)
	require.True(t, rows.Next())
	var a int
	require.NoError(t, rows.Scan(&a))
	assert.Equal(t, 1, a)
	require.False(t, rows.Next())

	require.True(t, rows.NextResultSet())
	cols, err = rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, cols)
	require.True(t, rows.Next())
	var b, c int
	require.NoError(t, rows.Scan(&b, &c))
	assert.Equal(t, 2, b)
	assert.Equal(t, 3, c)
	require.False(t, rows.Next())

	assert.False(t, rows.NextResultSet())
}

// TestThreeSelects N 条语句就有 N 个结果集，顺序和语句一致
func (s *MultiResultTestSuite) TestThreeSelects() {
	t := s.T()
	rows, err := s.db.Query("SELECT 1; SELECT 2; SELECT 3;")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, rows.Close())
	}()

	want := []int{1, 2, 3}
	for i, w := range want {
		require.True(t, rows.Next(), "第 %d 个结果集应当有一行", i+1)
		var v int
		require.NoError(t, rows.Scan(&v))
		assert.Equal(t, w, v)
		require.False(t, rows.Next())
		if i < len(want)-1 {
			require.True(t, rows.NextResultSet())
		}
	}
	assert.False(t, rows.NextResultSet())
}

// TestMixedDMLAndSelect 写入语句不产生结果集，夹在中间不影响后面的 SELECT
func (s *MultiResultTestSuite) TestMixedDMLAndSelect() {
	t := s.T()
	rows, err := s.db.Query(
		"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (7,70,'x',7.0); SELECT COUNT(*) FROM `order` WHERE `user_id` = 7;")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, rows.Close())
	}()

	// 第一段是 INSERT，整个响应流里只有一个结果集
	require.True(t, rows.Next())
	var count int
	require.NoError(t, rows.Scan(&count))
	assert.Equal(t, 1, count)
	require.False(t, rows.Next())
	assert.False(t, rows.NextResultSet())
}

// TestMultiDMLAffectedRows 多条写入时 Result 反映的是最后一条
func (s *MultiResultTestSuite) TestMultiDMLAffectedRows() {
	t := s.T()
	execSQL(t, s.db, []string{
		"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (1,1,'a',1.0),(2,2,'b',2.0),(3,3,'c',3.0);",
	})
	res, err := s.db.Exec("UPDATE `order` SET `content` = 'u' WHERE `user_id` = 1; DELETE FROM `order` WHERE `user_id` IN (2,3);")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}
