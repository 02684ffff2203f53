package mysqldriver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string

		want          *Config
		assertErrFunc assert.ErrorAssertionFunc
	}{
		{
			name: "完整形态",
			dsn:  "root:root@tcp(127.0.0.1:3306)/demo",
			want: &Config{
				Addr:     "127.0.0.1:3306",
				User:     "root",
				Password: "root",
				DBName:   "demo",
				Charset:  "utf8mb4",
			},
			assertErrFunc: assert.NoError,
		},
		{
			name: "只有库名",
			dsn:  "/demo",
			want: &Config{
				Addr:    "127.0.0.1:3306",
				DBName:  "demo",
				Charset: "utf8mb4",
			},
			assertErrFunc: assert.NoError,
		},
		{
			name: "最小形态",
			dsn:  "/",
			want: &Config{
				Addr:    "127.0.0.1:3306",
				Charset: "utf8mb4",
			},
			assertErrFunc: assert.NoError,
		},
		{
			name: "地址不带端口就补默认端口",
			dsn:  "root@tcp(db.internal)/demo",
			want: &Config{
				Addr:    "db.internal:3306",
				User:    "root",
				DBName:  "demo",
				Charset: "utf8mb4",
			},
			assertErrFunc: assert.NoError,
		},
		{
			name: "用户名没有密码",
			dsn:  "root@tcp(127.0.0.1:3306)/demo",
			want: &Config{
				Addr:    "127.0.0.1:3306",
				User:    "root",
				DBName:  "demo",
				Charset: "utf8mb4",
			},
			assertErrFunc: assert.NoError,
		},
		{
			name: "密码里带@和斜杠",
			dsn:  "root:p@ss/w0rd@tcp(127.0.0.1:3306)/demo",
			want: &Config{
				Addr:     "127.0.0.1:3306",
				User:     "root",
				Password: "p@ss/w0rd",
				DBName:   "demo",
				Charset:  "utf8mb4",
			},
			assertErrFunc: assert.NoError,
		},
		{
			name: "带全部连接参数",
			dsn:  "root:root@tcp(127.0.0.1:13306)/demo?charset=latin1&timeout=5s&readTimeout=2s&writeTimeout=3s&compress=true&maxAllowedPacket=4194304",
			want: &Config{
				Addr:             "127.0.0.1:13306",
				User:             "root",
				Password:         "root",
				DBName:           "demo",
				Charset:          "latin1",
				Timeout:          5 * time.Second,
				ReadTimeout:      2 * time.Second,
				WriteTimeout:     3 * time.Second,
				Compress:         true,
				MaxAllowedPacket: 4194304,
			},
			assertErrFunc: assert.NoError,
		},
		{
			name:          "缺少斜杠",
			dsn:           "root:root@tcp(127.0.0.1:3306)",
			assertErrFunc: assert.Error,
		},
		{
			name:          "不支持的网络类型",
			dsn:           "root@unix(/tmp/mysql.sock)/demo",
			assertErrFunc: assert.Error,
		},
		{
			name:          "地址段括号不配对",
			dsn:           "root@tcp(127.0.0.1:3306/demo",
			assertErrFunc: assert.Error,
		},
		{
			name:          "不认识的连接参数",
			dsn:           "/demo?foo=bar",
			assertErrFunc: assert.Error,
		},
		{
			name:          "超时参数不是时间",
			dsn:           "/demo?timeout=abc",
			assertErrFunc: assert.Error,
		},
		{
			name:          "compress参数不是布尔",
			dsn:           "/demo?compress=maybe",
			assertErrFunc: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDSN(tt.dsn)
			tt.assertErrFunc(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "完整形态",
			cfg: &Config{
				Addr:     "127.0.0.1:3306",
				User:     "root",
				Password: "root",
				DBName:   "demo",
				Charset:  "utf8mb4",
			},
			want: "root:root@tcp(127.0.0.1:3306)/demo",
		},
		{
			name: "默认字符集不写进参数",
			cfg: &Config{
				Addr:    "127.0.0.1:3306",
				DBName:  "demo",
				Charset: "utf8mb4",
			},
			want: "tcp(127.0.0.1:3306)/demo",
		},
		{
			name: "带参数",
			cfg: &Config{
				Addr:     "127.0.0.1:13306",
				User:     "root",
				Password: "root",
				DBName:   "demo",
				Charset:  "latin1",
				Timeout:  5 * time.Second,
				Compress: true,
			},
			want: "root:root@tcp(127.0.0.1:13306)/demo?charset=latin1&timeout=5s&compress=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDSN(tt.cfg))
		})
	}
}

func TestParseDSN_RoundTrip(t *testing.T) {
	dsns := []string{
		"root:root@tcp(127.0.0.1:3306)/demo",
		"tcp(10.0.0.1:13306)/",
		"root:root@tcp(127.0.0.1:13306)/demo?charset=latin1&timeout=5s&compress=true&maxAllowedPacket=1048576",
	}
	for _, dsn := range dsns {
		t.Run(dsn, func(t *testing.T) {
			cfg, err := ParseDSN(dsn)
			require.NoError(t, err)
			assert.Equal(t, dsn, FormatDSN(cfg))
		})
	}
}
