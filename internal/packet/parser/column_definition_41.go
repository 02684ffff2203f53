package parser

import (
	"fmt"
	"reflect"

	"github.com/meoying/mysqldriver/internal/errs"
	"github.com/meoying/mysqldriver/internal/packet"
	"github.com/meoying/mysqldriver/internal/packet/encoding"
)

// ColumnDefinition41 结果集的列定义报文
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_com_query_response_text_resultset_column_definition.html
type ColumnDefinition41 struct {
	// Catalog 目录，服务端固定发 "def"
	Catalog string
	// Schema 数据库名
	Schema string
	// Table 查询里用的表名(别名)
	Table string
	// OrgTable 物理表名
	OrgTable string
	// Name 查询里用的列名(别名)
	Name string
	// OrgName 物理列名
	OrgName string
	// CharacterSet 列的字符集编号
	CharacterSet uint32
	// ColumnLength 列的最大显示长度
	ColumnLength uint32
	// Type 线上类型编号，详见 mysql_type.go
	Type packet.MySQLType
	// Flags 列定义标志位
	Flags packet.ColumnFlags
	// Decimals 小数位数
	Decimals byte
}

func (c *ColumnDefinition41) Parse(payload []byte) error {
	r := encoding.NewReader(payload)
	var err error

	// string<lenenc>	catalog	The catalog used. Currently, always "def"
	if c.Catalog, err = r.LengthEncodedString(); err != nil {
		return err
	}
	// string<lenenc>	schema
	if c.Schema, err = r.LengthEncodedString(); err != nil {
		return err
	}
	// string<lenenc>	table	虚拟数据表名
	if c.Table, err = r.LengthEncodedString(); err != nil {
		return err
	}
	// string<lenenc>	org_table	物理数据表名
	if c.OrgTable, err = r.LengthEncodedString(); err != nil {
		return err
	}
	// string<lenenc>	name	虚拟字段名
	if c.Name, err = r.LengthEncodedString(); err != nil {
		return err
	}
	// string<lenenc>	org_name	物理字段名
	if c.OrgName, err = r.LengthEncodedString(); err != nil {
		return err
	}

	// int<lenenc>	length of fixed length fields	固定是 0x0c
	fixed, isNull, err := r.LengthEncodedInteger()
	if err != nil {
		return err
	}
	if isNull || fixed != 0x0c {
		return fmt.Errorf("%w：列定义的固定长度段应为 0x0c，得到 %d",
			errs.ErrMalformedPkt, fixed)
	}

	// int<2>	character_set	the column character set as defined in Character Set
	charset, err := r.Uint16()
	if err != nil {
		return err
	}
	c.CharacterSet = uint32(charset)

	// int<4>	column_length	maximum length of the field
	if c.ColumnLength, err = r.Uint32(); err != nil {
		return err
	}

	// int<1>	type	字段类型编号
	typ, err := r.Uint8()
	if err != nil {
		return err
	}
	c.Type = packet.MySQLType(typ)

	// int<2>	flags	字段定义标志
	fs, err := r.Uint16()
	if err != nil {
		return err
	}
	c.Flags = packet.ColumnFlags(fs)

	// int<1>	decimals	max shown decimal digits
	if c.Decimals, err = r.Uint8(); err != nil {
		return err
	}

	// 结尾还有两个保留字节，不看
	return nil
}

// Kind 粗分类
func (c *ColumnDefinition41) Kind() packet.Kind {
	return packet.KindOf(c.Type, c.Flags)
}

// ScanType 对外暴露的 Go 值类型
func (c *ColumnDefinition41) ScanType() reflect.Type {
	return packet.ScanTypeOf(c.Type, c.Flags)
}

// DatabaseTypeName 规范类型名，例如 VARCHAR、BIGINT
func (c *ColumnDefinition41) DatabaseTypeName() string {
	return packet.DatabaseTypeName(c.Type, c.Flags)
}

// Nullable 列是否允许 NULL
func (c *ColumnDefinition41) Nullable() bool {
	return !c.Flags.Has(packet.ColumnFlagNotNull)
}
