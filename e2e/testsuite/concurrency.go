package testsuite

import (
	"database/sql"
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

// ConcurrencyTestSuite 连接池里多条连接并发读写。
// 驱动本身单连接串行，这里验证的是经由 database/sql
// 复用连接时序号复位和状态机有没有被搞乱
type ConcurrencyTestSuite struct {
	suite.Suite
	db *sql.DB
}

func (s *ConcurrencyTestSuite) SetDB(db *sql.DB) {
	s.db = db
}

func (s *ConcurrencyTestSuite) TearDownTest() {
	ClearTables(s.T(), s.db)
}

func (s *ConcurrencyTestSuite) TestParallelInsertAndSelect() {
	t := s.T()
	const workers = 8
	const rowsPerWorker = 20

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			for i := 0; i < rowsPerWorker; i++ {
				userID := w*rowsPerWorker + i + 1
				_, err := s.db.Exec(fmt.Sprintf(
					"INSERT INTO `order` (`user_id`,`order_id`,`content`,`amount`) VALUES (%d,%d,'w%d',%d.5);",
					userID, userID, w, i))
				if err != nil {
					return err
				}
				var got int
				err = s.db.QueryRow(fmt.Sprintf(
					"SELECT `user_id` FROM `order` WHERE `user_id` = %d;", userID)).Scan(&got)
				if err != nil {
					return err
				}
				if got != userID {
					return fmt.Errorf("读到 user_id=%d，预期 %d", got, userID)
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	var total int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM `order`;").Scan(&total))
	assert.Equal(t, workers*rowsPerWorker, total)
}
