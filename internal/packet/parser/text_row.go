package parser

import (
	"fmt"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
)

// TextRow 文本协议结果集的一行。
// 每个值是一个 string<lenenc>，NULL 值用单独的 0xFB 标记
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_row.html
type TextRow struct {
	// ColumnCount 由调用方根据列定义给出，解析前必须设置
	ColumnCount int
	// Values 解析出来的值，nil 元素表示 NULL
	Values [][]byte
}

func (t *TextRow) Parse(payload []byte) error {
	r := encoding.NewReader(payload)
	t.Values = make([][]byte, 0, t.ColumnCount)
	for i := 0; i < t.ColumnCount; i++ {
		v, isNull, err := r.LengthEncodedBytes()
		if err != nil {
			return fmt.Errorf("解析第 %d 列失败：%w", i+1, err)
		}
		if isNull {
			t.Values = append(t.Values, nil)
			continue
		}
		t.Values = append(t.Values, v)
	}
	if r.Remaining() > 0 {
		// 列数和行数据对不上，上游多半已经乱序了
		return fmt.Errorf("%w：行数据多出 %d 字节", errs.ErrMalformedPkt, r.Remaining())
	}
	return nil
}

// ResultSetHeader 结果集响应的第一个报文，只有一个列数量
type ResultSetHeader struct {
	ColumnCount uint64
}

func (h *ResultSetHeader) Parse(payload []byte) error {
	r := encoding.NewReader(payload)
	count, isNull, err := r.LengthEncodedInteger()
	if err != nil {
		return err
	}
	if isNull || count == 0 {
		return fmt.Errorf("%w：列数量非法", errs.ErrMalformedPkt)
	}
	h.ColumnCount = count
	return nil
}
