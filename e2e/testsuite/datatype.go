package testsuite

import (
	"database/sql"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// DataTypeTestSuite 各种列类型在文本协议下的解码正确性。
// 每个用例都把本驱动读到的值和参照驱动读到的值做整行对比，
// 两边拿到的必须一字节不差
type DataTypeTestSuite struct {
	suite.Suite
	db  *sql.DB
	ref *sql.DB
}

func (s *DataTypeTestSuite) SetDB(db *sql.DB) {
	s.db = db
}

func (s *DataTypeTestSuite) SetReferenceDB(db *sql.DB) {
	s.ref = db
}

func (s *DataTypeTestSuite) SetupSuite() {
	t := s.T()
	execSQL(t, s.db, []string{
		"CREATE TABLE IF NOT EXISTS `test_int_type` (" +
			"`id` INT NOT NULL," +
			"`c_tinyint` TINYINT," +
			"`c_smallint` SMALLINT," +
			"`c_mediumint` MEDIUMINT," +
			"`c_int` INT," +
			"`c_bigint` BIGINT," +
			"`c_ubigint` BIGINT UNSIGNED," +
			"PRIMARY KEY (`id`)) ENGINE=InnoDB;",
		"CREATE TABLE IF NOT EXISTS `test_float_type` (" +
			"`id` INT NOT NULL," +
			"`c_float` FLOAT," +
			"`c_double` DOUBLE," +
			"`c_decimal` DECIMAL(12,4)," +
			"PRIMARY KEY (`id`)) ENGINE=InnoDB;",
		"CREATE TABLE IF NOT EXISTS `test_string_type` (" +
			"`id` INT NOT NULL," +
			"`c_char` CHAR(8)," +
			"`c_varchar` VARCHAR(64)," +
			"`c_text` TEXT," +
			"`c_blob` BLOB," +
			"`c_varbinary` VARBINARY(16)," +
			"`c_enum` ENUM('small','medium','large')," +
			"`c_set` SET('a','b','c')," +
			"PRIMARY KEY (`id`)) ENGINE=InnoDB;",
		"CREATE TABLE IF NOT EXISTS `test_date_type` (" +
			"`id` INT NOT NULL," +
			"`c_date` DATE," +
			"`c_datetime` DATETIME(3)," +
			"`c_timestamp` TIMESTAMP NULL," +
			"`c_time` TIME," +
			"`c_year` YEAR," +
			"PRIMARY KEY (`id`)) ENGINE=InnoDB;",

		"TRUNCATE TABLE `test_int_type`;",
		"TRUNCATE TABLE `test_float_type`;",
		"TRUNCATE TABLE `test_string_type`;",
		"TRUNCATE TABLE `test_date_type`;",

		// id=1 寻常取值，id=2 最大值，id=3 最小值，id=4 全 NULL
		"INSERT INTO `test_int_type` VALUES" +
			" (1,1,2,3,4,5,6)," +
			" (2,127,32767,8388607,2147483647,9223372036854775807,18446744073709551615)," +
			" (3,-128,-32768,-8388608,-2147483648,-9223372036854775808,0)," +
			" (4,NULL,NULL,NULL,NULL,NULL,NULL);",
		"INSERT INTO `test_float_type` VALUES" +
			" (1,1.5,2.25,'1234.5678')," +
			" (2,3.402823466E+38,1.7976931348623157E+308,'99999999.9999')," +
			" (3,-3.402823466E+38,-1.7976931348623157E+308,'-99999999.9999')," +
			" (4,NULL,NULL,NULL);",
		"INSERT INTO `test_string_type` VALUES" +
			" (1,'abc','hello','长文本内容',x'00FF10','bin','small','a,c')," +
			" (2,'12345678','','',x'',x'','large','a,b,c')," +
			" (4,NULL,NULL,NULL,NULL,NULL,NULL,NULL);",
		"INSERT INTO `test_date_type` VALUES" +
			" (1,'2024-05-01','2024-05-01 12:34:56.789','2024-05-01 12:34:56','838:59:59','2024')," +
			" (2,'9999-12-31','9999-12-31 23:59:59.999',NULL,'-838:59:59','2155')," +
			" (3,'1000-01-01','1000-01-01 00:00:00',NULL,'00:00:00','1901')," +
			" (4,NULL,NULL,NULL,NULL,NULL);",
	})
}

func (s *DataTypeTestSuite) TearDownSuite() {
	execSQL(s.T(), s.db, []string{
		"DROP TABLE IF EXISTS `test_int_type`;",
		"DROP TABLE IF EXISTS `test_float_type`;",
		"DROP TABLE IF EXISTS `test_string_type`;",
		"DROP TABLE IF EXISTS `test_date_type`;",
	})
}

// TestIntTypes 整数类型，含有符号数上下界和无符号上界
func (s *DataTypeTestSuite) TestIntTypes() {
	t := s.T()
	testCases := []struct {
		name  string
		query string
	}{
		{
			name:  "寻常整数",
			query: "SELECT * FROM `test_int_type` WHERE `id` = 1",
		},
		{
			name:  "最大整数",
			query: "SELECT * FROM `test_int_type` WHERE `id` = 2",
		},
		{
			name:  "最小整数",
			query: "SELECT * FROM `test_int_type` WHERE `id` = 3",
		},
		{
			name:  "NULL值",
			query: "SELECT * FROM `test_int_type` WHERE `id` = 4",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected := scanAllRows(t, s.ref, tc.query)
			actual := scanAllRows(t, s.db, tc.query)
			assert.Equal(t, actual, expected)
		})
	}
}

// TestIntTypeRawBytes 文本协议下整数以十进制字符串传输
func (s *DataTypeTestSuite) TestIntTypeRawBytes() {
	t := s.T()
	actual := scanAllRows(t, s.db, "SELECT `c_bigint`, `c_ubigint` FROM `test_int_type` WHERE `id` = 2")
	assert.Equal(t, actual, [][]any{
		{[]byte("9223372036854775807"), []byte("18446744073709551615")},
	})
}

// TestFloatTypes 浮点和定点类型
func (s *DataTypeTestSuite) TestFloatTypes() {
	t := s.T()
	testCases := []struct {
		name  string
		query string
	}{
		{
			name:  "寻常浮点数",
			query: "SELECT * FROM `test_float_type` WHERE `id` = 1",
		},
		{
			name:  "最大浮点数",
			query: "SELECT * FROM `test_float_type` WHERE `id` = 2",
		},
		{
			name:  "最小浮点数",
			query: "SELECT * FROM `test_float_type` WHERE `id` = 3",
		},
		{
			name:  "NULL值",
			query: "SELECT * FROM `test_float_type` WHERE `id` = 4",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected := scanAllRows(t, s.ref, tc.query)
			actual := scanAllRows(t, s.db, tc.query)
			assert.Equal(t, actual, expected)
		})
	}
}

// TestStringTypes 字符串、二进制、枚举和集合类型
func (s *DataTypeTestSuite) TestStringTypes() {
	t := s.T()
	testCases := []struct {
		name  string
		query string
	}{
		{
			name:  "寻常字符串",
			query: "SELECT * FROM `test_string_type` WHERE `id` = 1",
		},
		{
			name:  "空串和空二进制",
			query: "SELECT * FROM `test_string_type` WHERE `id` = 2",
		},
		{
			name:  "NULL值",
			query: "SELECT * FROM `test_string_type` WHERE `id` = 4",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected := scanAllRows(t, s.ref, tc.query)
			actual := scanAllRows(t, s.db, tc.query)
			assert.Equal(t, actual, expected)
		})
	}
}

// TestDateTypes 日期时间类型
func (s *DataTypeTestSuite) TestDateTypes() {
	t := s.T()
	testCases := []struct {
		name  string
		query string
	}{
		{
			name:  "寻常日期",
			query: "SELECT * FROM `test_date_type` WHERE `id` = 1",
		},
		{
			name:  "最大日期",
			query: "SELECT * FROM `test_date_type` WHERE `id` = 2",
		},
		{
			name:  "最小日期",
			query: "SELECT * FROM `test_date_type` WHERE `id` = 3",
		},
		{
			name:  "NULL值",
			query: "SELECT * FROM `test_date_type` WHERE `id` = 4",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected := scanAllRows(t, s.ref, tc.query)
			actual := scanAllRows(t, s.db, tc.query)
			assert.Equal(t, actual, expected)
		})
	}
}

func scanAllRows(t *testing.T, db *sql.DB, query string) [][]any {
	t.Helper()
	rows, err := db.Query(query)
	require.NoError(t, err)
	cols, err := rows.Columns()
	require.NoError(t, err)
	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		require.NoError(t, rows.Scan(scan...))
		out = append(out, values)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	return out
}
