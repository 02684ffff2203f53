// Package connection 实现 MySQL 客户端连接的核心：
// 分帧、握手、命令执行和结果集解码，全部由一个显式的状态机驱动
package connection

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/parser"
)

// State 连接所处的生命周期阶段。
// 状态只能由 Conn 自己迁移，调用方只读
type State uint8

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
	StateExecuting
	StateFetching
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateConnecting:
		return "Connecting"
	case StateOpen:
		return "Open"
	case StateExecuting:
		return "Executing"
	case StateFetching:
		return "Fetching"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Options 打开一条连接所需的全部配置。
// 连接尝试一旦开始就不会再变，Conn 内部持有自己的副本
type Options struct {
	// Address host:port
	Address  string
	User     string
	Password string
	Database string
	// Charset 连接字符集名，空值按 utf8mb4 处理
	Charset string
	// ConnectTimeout 建立 TCP 连接的超时
	ConnectTimeout time.Duration
	// ReadTimeout 每次底层读的超时，0 表示不限
	ReadTimeout time.Duration
	// WriteTimeout 每次底层写的超时，0 表示不限
	WriteTimeout time.Duration
	// Compress 是否请求压缩协议。服务端也支持才会真正启用
	Compress bool
	// MaxAllowedPacket 单个逻辑报文的上限，0 取默认值
	MaxAllowedPacket int
	// Dialer 建立底层连接的钩子。留空用 net.Dialer，测试里用来接内存管道
	Dialer func(ctx context.Context, network, address string) (net.Conn, error)
	Logger *slog.Logger
}

// defaultMaxAllowedPacket 和 MySQL 服务端常见默认值保持一致
const defaultMaxAllowedPacket = 64 << 20

// ServerInfo 握手阶段捕获的服务端信息，握手完成后只读
type ServerInfo struct {
	ConnectionID uint32
	Version      string
	Protocol     byte
	CharacterSet byte
	// Capabilities 协商之后双方共同的功能集合
	Capabilities flags.CapabilityFlags
}

// Result 最近一次命令的执行结果，每个命令完成后整体覆盖
type Result struct {
	AffectedRows uint64
	LastInsertID uint64
	StatusFlags  flags.SeverStatus
	Warnings     uint16
	Info         string
}

// Conn 一条 MySQL 客户端连接。
// 严格单线程同步使用：同一时刻最多一个在途命令，状态机拒绝并发命令。
// 超时通过底层 socket 的读写截止时间兑现，命令中途不支持取消
type Conn struct {
	opts      Options
	conn      net.Conn
	transport transport
	sequence  uint8
	state     State
	collation uint8

	server   ServerInfo
	result   Result
	database string

	logger    *slog.Logger
	closeOnce sync.Once
	closed    atomic.Bool
}

// Open 建立连接并完成握手。失败时保证底层 socket 已经释放
func Open(ctx context.Context, opts Options) (*Conn, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	charset := opts.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	collation, ok := packet.CollationID(charset)
	if !ok {
		return nil, errs.NewErrUnsupportedCharset(charset)
	}
	c := &Conn{
		opts:      opts,
		state:     StateClosed,
		collation: collation,
		database:  opts.Database,
		logger:    logger,
	}
	if err := c.open(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Conn) open(ctx context.Context) error {
	c.state = StateConnecting

	dial := c.opts.Dialer
	if dial == nil {
		nd := &net.Dialer{Timeout: c.opts.ConnectTimeout}
		dial = nd.DialContext
	}
	conn, err := dial(ctx, "tcp", c.opts.Address)
	if err != nil {
		c.state = StateClosed
		return errors.Wrapf(err, "建立到 %s 的连接失败", c.opts.Address)
	}
	c.conn = conn
	c.transport = newPlainTransport(conn, c.opts.ReadTimeout, c.opts.WriteTimeout)

	if err := c.handshake(); err != nil {
		// 握手失败必须退回 Closed 并释放 socket
		c.cleanup()
		return err
	}
	c.state = StateOpen
	c.logger.Debug("连接已建立",
		slog.String("地址", c.opts.Address),
		slog.Uint64("连接ID", uint64(c.server.ConnectionID)),
		slog.String("服务端版本", c.server.Version))
	return nil
}

// Close 尽力而为的关闭：链路还健康就补一个 COM_QUIT，
// 传输层的错误一律吞掉，状态总是落到 Closed，重复关闭是空操作
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		var combined error
		if !c.closed.Load() && c.conn != nil && c.state != StateClosed {
			if err := c.writeCommand(packet.CommandQuit, nil); err != nil {
				combined = multierror.Append(combined, err)
			}
		}
		if c.conn != nil {
			if err := c.conn.Close(); err != nil {
				combined = multierror.Append(combined, err)
			}
		}
		if combined != nil {
			c.logger.Debug("关闭连接时出现错误", slog.Any("错误", combined))
		}
		c.state = StateClosed
		c.closed.Store(true)
	})
	return nil
}

// cleanup 直接断开底层 socket。
// 用在协议已经乱掉、救不回来的场合，之后这条连接只能 Close
func (c *Conn) cleanup() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.state = StateClosed
	c.closed.Store(true)
}

func (c *Conn) assertState(expect State) error {
	if c.state != expect {
		return fmt.Errorf("%w：当前 %s，需要 %s", errs.ErrBadConnState, c.state, expect)
	}
	return nil
}

func (c *Conn) maxAllowedPacket() int {
	if c.opts.MaxAllowedPacket > 0 {
		return c.opts.MaxAllowedPacket
	}
	return defaultMaxAllowedPacket
}

func (c *Conn) captureResult(ok *parser.OKPacket) {
	c.result = Result{
		AffectedRows: ok.AffectedRows,
		LastInsertID: ok.LastInsertID,
		StatusFlags:  ok.StatusFlags,
		Warnings:     ok.Warnings,
		Info:         ok.Info,
	}
}

// State 当前生命周期阶段
func (c *Conn) State() State {
	return c.state
}

// Server 握手时捕获的服务端信息
func (c *Conn) Server() ServerInfo {
	return c.server
}

// Result 最近一次命令的执行结果
func (c *Conn) Result() Result {
	return c.result
}

// Database 连接上协商的库名
func (c *Conn) Database() string {
	return c.database
}

// RowsAffected 最近一次命令影响的行数
func (c *Conn) RowsAffected() uint64 {
	return c.result.AffectedRows
}

// LastInsertID 最近一次命令生成的自增主键
func (c *Conn) LastInsertID() uint64 {
	return c.result.LastInsertID
}

// Valid 连接是否还能继续发命令
func (c *Conn) Valid() bool {
	return !c.closed.Load() && c.state == StateOpen
}
