package testsuite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TxTestSuite 单机事务
type TxTestSuite struct {
	suite.Suite
	db *sql.DB
}

func (s *TxTestSuite) SetDB(db *sql.DB) {
	s.db = db
}

func (s *TxTestSuite) TearDownTest() {
	ClearTables(s.T(), s.db)
}

// TestCommitAndRollback 提交的可见，回滚的不可见
func (s *TxTestSuite) TestCommitAndRollback() {
	t := s.T()
	testcases := []struct {
		name         string
		query        string
		finish       func(t *testing.T, tx *sql.Tx)
		wantUserIDs  []int64
		wantRowCount int
	}{
		{
			name:  "插入并提交",
			query: "INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (11,1,'tx',1.0);",
			finish: func(t *testing.T, tx *sql.Tx) {
				require.NoError(t, tx.Commit())
			},
			wantUserIDs:  []int64{11},
			wantRowCount: 1,
		},
		{
			name:  "插入并回滚",
			query: "INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (12,1,'tx',1.0);",
			finish: func(t *testing.T, tx *sql.Tx) {
				require.NoError(t, tx.Rollback())
			},
			wantUserIDs:  []int64{12},
			wantRowCount: 0,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := s.db.Begin()
			require.NoError(t, err)
			_, err = tx.Exec(tc.query)
			require.NoError(t, err)
			tc.finish(t, tx)

			rows := getRowsFromTable(t, s.db, tc.wantUserIDs)
			got := getOrdersFromRows(t, rows)
			assert.Len(t, got, tc.wantRowCount)
			ClearTables(t, s.db)
		})
	}
}

// TestIsolationLevel 隔离级别通过 SET TRANSACTION 下发
func (s *TxTestSuite) TestIsolationLevel() {
	t := s.T()
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	require.NoError(t, err)
	_, err = tx.Exec("INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (13,1,'serializable',1.0);")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	rows := getRowsFromTable(t, s.db, []int64{13})
	assert.Len(t, getOrdersFromRows(t, rows), 1)
}

// TestUnsupportedIsolationLevel 不认识的隔离级别直接拒绝，不下发
func (s *TxTestSuite) TestUnsupportedIsolationLevel() {
	t := s.T()
	_, err := s.db.BeginTx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelLinearizable,
	})
	assert.Error(t, err)
}

// TestReadOnly 只读事务里的写入要被服务端拒绝
func (s *TxTestSuite) TestReadOnly() {
	t := s.T()
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{
		ReadOnly: true,
	})
	require.NoError(t, err)
	_, err = tx.Exec("INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (14,1,'ro',1.0);")
	assert.Error(t, err)
	require.NoError(t, tx.Rollback())
}
