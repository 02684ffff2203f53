package connection

import (
	"context"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/parser"
)

// Query 执行一段命令文本，返回按语句顺序排列的结果集。
// 纯写入语句不产生结果集：单条写入返回 nil，
// 执行结果从 Result() 读取。nil 和"一个空结果集"是两回事。
// 多语句命令的每个 SELECT 各占一个结果集
func (c *Conn) Query(ctx context.Context, query string) ([]*ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.assertState(StateOpen); err != nil {
		return nil, err
	}
	c.state = StateExecuting
	if err := c.writeCommand(packet.CommandQuery, []byte(query)); err != nil {
		return nil, err
	}

	var sets []*ResultSet
	for {
		rs, err := c.readResult()
		if err != nil {
			return nil, err
		}
		if rs != nil {
			sets = append(sets, rs)
		}
		// SERVER_MORE_RESULTS_EXISTS 除最后一段外都置位
		if !c.result.StatusFlags.Has(flags.ServerMoreResultsExists) {
			c.state = StateOpen
			return sets, nil
		}
		c.state = StateExecuting
	}
}

// QueryScalar 取第一个结果集第一行第一列。
// 没有结果集、没有行或者值为 NULL 时第二个返回值为 false，不算错误
func (c *Conn) QueryScalar(ctx context.Context, query string) ([]byte, bool, error) {
	sets, err := c.Query(ctx, query)
	if err != nil {
		return nil, false, err
	}
	if len(sets) == 0 || sets[0].RowCount() == 0 {
		return nil, false, nil
	}
	v, ok := sets[0].Value(0, 0)
	return v, ok, nil
}

// Ping 探活
func (c *Conn) Ping(ctx context.Context) error {
	return c.execSimple(ctx, packet.CommandPing, nil)
}

// ResetConnection 要求服务端清掉会话状态(临时表、用户变量、事务等)，
// 比断开重连便宜得多
func (c *Conn) ResetConnection(ctx context.Context) error {
	return c.execSimple(ctx, packet.CommandResetConnection, nil)
}

// UseDatabase 切换默认数据库，成功后 Database() 返回新值
func (c *Conn) UseDatabase(ctx context.Context, name string) error {
	if err := c.execSimple(ctx, packet.CommandInitDB, []byte(name)); err != nil {
		return err
	}
	c.database = name
	return nil
}

// execSimple 只有 OK 或者 ERR 两种响应的命令
func (c *Conn) execSimple(ctx context.Context, cmd packet.Command, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.assertState(StateOpen); err != nil {
		return err
	}
	c.state = StateExecuting
	if err := c.writeCommand(cmd, payload); err != nil {
		return err
	}
	reply, err := c.readPacket()
	if err != nil {
		return err
	}
	switch {
	case parser.IsErr(reply):
		var errPkt parser.ErrPacket
		if err := errPkt.Parse(reply); err != nil {
			c.cleanup()
			return err
		}
		c.state = StateOpen
		return errPkt.ToError()
	case parser.IsOK(reply):
		var ok parser.OKPacket
		if err := ok.Parse(reply); err != nil {
			c.cleanup()
			return err
		}
		c.captureResult(&ok)
		c.state = StateOpen
		return nil
	default:
		c.cleanup()
		return errs.NewErrUnexpectedPacket(reply[0])
	}
}

// readResult 读取响应流中的一段：OK、ERR 或者一个完整的结果集。
// 服务端报错只终止当前命令，状态退回 Open；
// 协议层面解析不了的报文说明双方已经错位，直接断开
func (c *Conn) readResult() (*ResultSet, error) {
	payload, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	switch {
	case parser.IsErr(payload):
		var errPkt parser.ErrPacket
		if err := errPkt.Parse(payload); err != nil {
			c.cleanup()
			return nil, err
		}
		c.state = StateOpen
		return nil, errPkt.ToError()
	case parser.IsOK(payload):
		var ok parser.OKPacket
		if err := ok.Parse(payload); err != nil {
			c.cleanup()
			return nil, err
		}
		c.captureResult(&ok)
		return nil, nil
	case payload[0] == packet.LocalInFileHeader:
		return nil, c.rejectLocalInFile()
	default:
		return c.readResultSet(payload)
	}
}

// rejectLocalInFile LOAD DATA LOCAL INFILE 要求客户端回传文件内容。
// 这里不支持，但是按协议回一个空报文把这轮交互走完，连接还能继续用
func (c *Conn) rejectLocalInFile() error {
	if err := c.writePacket(make([]byte, 4)); err != nil {
		return err
	}
	reply, err := c.readPacket()
	if err != nil {
		return err
	}
	switch {
	case parser.IsErr(reply):
		var errPkt parser.ErrPacket
		if err := errPkt.Parse(reply); err != nil {
			c.cleanup()
			return err
		}
		c.state = StateOpen
		return errPkt.ToError()
	case parser.IsOK(reply):
		var ok parser.OKPacket
		if err := ok.Parse(reply); err != nil {
			c.cleanup()
			return err
		}
		c.captureResult(&ok)
		c.state = StateOpen
		return errs.ErrLocalInFile
	default:
		c.cleanup()
		return errs.NewErrUnexpectedPacket(reply[0])
	}
}

// readResultSet 首包已经读到列数量，接着读取列定义和行数据。
// 布局是：列数量、N 个列定义、EOF、若干行、OK/EOF 终结包
func (c *Conn) readResultSet(header []byte) (*ResultSet, error) {
	var rsHeader parser.ResultSetHeader
	if err := rsHeader.Parse(header); err != nil {
		c.cleanup()
		return nil, err
	}
	c.state = StateFetching

	fields := make([]*parser.ColumnDefinition41, 0, rsHeader.ColumnCount)
	for i := uint64(0); i < rsHeader.ColumnCount; i++ {
		payload, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		if parser.IsErr(payload) {
			var errPkt parser.ErrPacket
			if err := errPkt.Parse(payload); err != nil {
				c.cleanup()
				return nil, err
			}
			c.state = StateOpen
			return nil, errPkt.ToError()
		}
		if parser.IsEOF(payload) {
			// 声明的列数量和实际收到的对不上
			c.cleanup()
			return nil, errs.NewErrUnexpectedPacket(payload[0])
		}
		var col parser.ColumnDefinition41
		if err := col.Parse(payload); err != nil {
			c.cleanup()
			return nil, err
		}
		fields = append(fields, &col)
	}

	// 列定义之后的 EOF 分隔包
	payload, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	if !parser.IsEOF(payload) {
		c.cleanup()
		return nil, errs.NewErrUnexpectedPacket(payload[0])
	}

	rs := NewResultSet(fields)
	for {
		payload, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		if parser.IsErr(payload) {
			// 行数据中途也可能报错，比如查询超时被杀
			var errPkt parser.ErrPacket
			if err := errPkt.Parse(payload); err != nil {
				c.cleanup()
				return nil, err
			}
			c.state = StateOpen
			return nil, errPkt.ToError()
		}
		// 0x00 开头的可能是首列为空串的行，所以终结包只认短 0xFE
		if parser.IsEOF(payload) {
			var ok parser.OKPacket
			if err := ok.Parse(payload); err != nil {
				c.cleanup()
				return nil, err
			}
			c.captureResult(&ok)
			return rs, nil
		}
		row := parser.TextRow{ColumnCount: len(fields)}
		if err := row.Parse(payload); err != nil {
			c.cleanup()
			return nil, err
		}
		rs.AppendRow(row.Values)
	}
}
