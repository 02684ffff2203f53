package mysqldriver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meoying/mysqldriver/internal/connection"
)

// Config 一条连接的全部配置。
// 既可以用 ParseDSN 从连接串解析，也可以从 yaml 配置文件加载
type Config struct {
	// Addr host:port
	Addr     string `yaml:"addr"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// DBName 默认数据库，可以为空
	DBName string `yaml:"dbName"`
	// Charset 连接字符集，空值按 utf8mb4 处理
	Charset string `yaml:"charset"`
	// Timeout 建立连接(含握手)的超时
	Timeout time.Duration `yaml:"timeout"`
	// ReadTimeout 单次底层读的超时
	ReadTimeout time.Duration `yaml:"readTimeout"`
	// WriteTimeout 单次底层写的超时
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	// Compress 是否请求压缩协议
	Compress bool `yaml:"compress"`
	// MaxAllowedPacket 单个逻辑报文的上限，0 取默认值
	MaxAllowedPacket int `yaml:"maxAllowedPacket"`
	// Dialer 建立底层连接的钩子，留空用 net.Dialer
	Dialer func(ctx context.Context, network, address string) (net.Conn, error) `yaml:"-"`

	logger *slog.Logger
}

// NewConfig 填好默认值的配置
func NewConfig() *Config {
	return &Config{
		Charset: "utf8mb4",
	}
}

// LoadConfigFile 从 yaml 配置文件加载
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return cfg, nil
}

// WithLogger 替换默认的 slog.Default
func (c *Config) WithLogger(l *slog.Logger) *Config {
	c.logger = l
	return c
}

// Clone 深拷贝，连接尝试各自持有自己的副本
func (c *Config) Clone() *Config {
	cc := *c
	return &cc
}

func (c *Config) connOptions() connection.Options {
	return connection.Options{
		Address:          c.Addr,
		User:             c.User,
		Password:         c.Password,
		Database:         c.DBName,
		Charset:          c.Charset,
		ConnectTimeout:   c.Timeout,
		ReadTimeout:      c.ReadTimeout,
		WriteTimeout:     c.WriteTimeout,
		Compress:         c.Compress,
		MaxAllowedPacket: c.MaxAllowedPacket,
		Dialer:           c.Dialer,
		Logger:           c.logger,
	}
}
