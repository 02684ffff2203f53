package mysqldriver

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const defaultPort = "3306"

// ParseDSN 解析连接串：
//
//	[user[:password]@][tcp[(addr)]]/dbname[?参数=值&...]
//
// 支持的参数有 charset、timeout、readTimeout、writeTimeout、
// compress、maxAllowedPacket。所有值按字面使用，不做转义。
// 例如 root:root@tcp(127.0.0.1:3306)/demo?charset=utf8mb4&timeout=5s
func ParseDSN(dsn string) (*Config, error) {
	cfg := NewConfig()

	// 从右往左找最后一个 '/'：左边是鉴权信息和地址，右边是库名和参数。
	// 密码里可以出现 '/'，所以不能从左往右
	slash := strings.LastIndexByte(dsn, '/')
	if slash < 0 {
		return nil, fmt.Errorf("非法 DSN：缺少 '/'")
	}

	left, right := dsn[:slash], dsn[slash+1:]

	if left != "" {
		// 密码里可以出现 '@'，一样取最后一个
		addr := left
		if at := strings.LastIndexByte(left, '@'); at >= 0 {
			cred := left[:at]
			addr = left[at+1:]
			if colon := strings.IndexByte(cred, ':'); colon >= 0 {
				cfg.User = cred[:colon]
				cfg.Password = cred[colon+1:]
			} else {
				cfg.User = cred
			}
		}
		if addr != "" {
			network := addr
			if open := strings.IndexByte(addr, '('); open >= 0 {
				if !strings.HasSuffix(addr, ")") {
					return nil, fmt.Errorf("非法 DSN：地址段 %q 括号不配对", addr)
				}
				network = addr[:open]
				cfg.Addr = addr[open+1 : len(addr)-1]
			}
			if network != "" && network != "tcp" {
				return nil, fmt.Errorf("不支持的网络类型 %q，只支持 tcp", network)
			}
		}
	}

	if query := strings.IndexByte(right, '?'); query >= 0 {
		if err := parseDSNParams(cfg, right[query+1:]); err != nil {
			return nil, err
		}
		right = right[:query]
	}
	cfg.DBName = right

	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:" + defaultPort
	}
	// 没写端口就补默认端口
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		cfg.Addr = net.JoinHostPort(cfg.Addr, defaultPort)
	}
	return cfg, nil
}

func parseDSNParams(cfg *Config, params string) error {
	for _, kv := range strings.Split(params, "&") {
		if kv == "" {
			continue
		}
		k, v, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("非法连接参数 %q", kv)
		}
		var err error
		switch k {
		case "charset":
			cfg.Charset = v
		case "timeout":
			cfg.Timeout, err = time.ParseDuration(v)
		case "readTimeout":
			cfg.ReadTimeout, err = time.ParseDuration(v)
		case "writeTimeout":
			cfg.WriteTimeout, err = time.ParseDuration(v)
		case "compress":
			cfg.Compress, err = strconv.ParseBool(v)
		case "maxAllowedPacket":
			cfg.MaxAllowedPacket, err = strconv.Atoi(v)
		default:
			return fmt.Errorf("不支持的连接参数 %q", k)
		}
		if err != nil {
			return fmt.Errorf("连接参数 %s 的值 %q 非法: %w", k, v, err)
		}
	}
	return nil
}

// FormatDSN 把配置还原成连接串，和 ParseDSN 互逆
func FormatDSN(cfg *Config) string {
	var b strings.Builder
	if cfg.User != "" {
		b.WriteString(cfg.User)
		if cfg.Password != "" {
			b.WriteByte(':')
			b.WriteString(cfg.Password)
		}
		b.WriteByte('@')
	}
	if cfg.Addr != "" {
		b.WriteString("tcp(")
		b.WriteString(cfg.Addr)
		b.WriteByte(')')
	}
	b.WriteByte('/')
	b.WriteString(cfg.DBName)

	var params []string
	if cfg.Charset != "" && cfg.Charset != "utf8mb4" {
		params = append(params, "charset="+cfg.Charset)
	}
	if cfg.Timeout > 0 {
		params = append(params, "timeout="+cfg.Timeout.String())
	}
	if cfg.ReadTimeout > 0 {
		params = append(params, "readTimeout="+cfg.ReadTimeout.String())
	}
	if cfg.WriteTimeout > 0 {
		params = append(params, "writeTimeout="+cfg.WriteTimeout.String())
	}
	if cfg.Compress {
		params = append(params, "compress=true")
	}
	if cfg.MaxAllowedPacket > 0 {
		params = append(params, "maxAllowedPacket="+strconv.Itoa(cfg.MaxAllowedPacket))
	}
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}
