package packet

import "reflect"

// MySQLType MySQL 的数据类型
type MySQLType uint16

const (
	MySQLTypeDecimal    MySQLType = 0
	MySQLTypeTiny       MySQLType = 1
	MySQLTypeShort      MySQLType = 2
	MySQLTypeLong       MySQLType = 3
	MySQLTypeFloat      MySQLType = 4
	MySQLTypeDouble     MySQLType = 5
	MySQLTypeNULL       MySQLType = 6
	MySQLTypeTimestamp  MySQLType = 7
	MySQLTypeLongLong   MySQLType = 8
	MySQLTypeInt24      MySQLType = 9
	MySQLTypeDate       MySQLType = 10
	MySQLTypeTime       MySQLType = 11
	MySQLTypeDatetime   MySQLType = 12
	MySQLTypeYear       MySQLType = 13
	MySQLTypeNewDate    MySQLType = 14 /**< Internal to MySQL. Not used in protocol */
	MySQLTypeVarchar    MySQLType = 15
	MySQLTypeBit        MySQLType = 16
	MySQLTypeTimestamp2 MySQLType = 17
	MySQLTypeDatetime2  MySQLType = 18 /**< Internal to MySQL. Not used in protocol */
	MySQLTypeTime2      MySQLType = 19 /**< Internal to MySQL. Not used in protocol */
	MySQLTypeTypedArray MySQLType = 20 /**< Used for replication only */
	MySQLTypeInvalid    MySQLType = 243
	MySQLTypeBool       MySQLType = 244 /**< Currently just a placeholder */
	MySQLTypeJSON       MySQLType = 245
	MySQLTypeNewDecimal MySQLType = 246
	MySQLTypeEnum       MySQLType = 247
	MySQLTypeSet        MySQLType = 248
	MySQLTypeTinyBlob   MySQLType = 249
	MySQLTypeMediumBlob MySQLType = 250
	MySQLTypeLongBlob   MySQLType = 251
	MySQLTypeBlob       MySQLType = 252
	MySQLTypeVarString  MySQLType = 253
	MySQLTypeString     MySQLType = 254
	MySQLTypeGeometry   MySQLType = 255
)

// ColumnFlags 列定义报文里的标志位
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__column__definition__flags.html
type ColumnFlags uint16

func (f ColumnFlags) Has(flag ColumnFlags) bool {
	return f&flag > 0
}

const (
	ColumnFlagNotNull       ColumnFlags = 1
	ColumnFlagPriKey        ColumnFlags = 2
	ColumnFlagUniqueKey     ColumnFlags = 4
	ColumnFlagMultipleKey   ColumnFlags = 8
	ColumnFlagBlob          ColumnFlags = 16
	ColumnFlagUnsigned      ColumnFlags = 32
	ColumnFlagZeroFill      ColumnFlags = 64
	ColumnFlagBinary        ColumnFlags = 128
	ColumnFlagEnum          ColumnFlags = 256
	ColumnFlagAutoIncrement ColumnFlags = 512
	ColumnFlagTimestamp     ColumnFlags = 1024
	ColumnFlagSet           ColumnFlags = 2048
	ColumnFlagNoDefault     ColumnFlags = 4096
	ColumnFlagOnUpdateNow   ColumnFlags = 8192
	ColumnFlagNum           ColumnFlags = 32768
)

// Kind 是对线上类型的粗分类。
// 线上类型空间是 MySQL 自定义的，而且会被标志位改写语义，
// 比如带 BINARY 标志的字符串类型其实是字节串而不是文本。
// 所以先把 (线上类型, 标志位) 归并成粗分类，再由粗分类映射对外暴露的值类型，
// 两段都用查表完成
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInteger
	KindFloat
	KindDecimal
	KindText
	KindBinary
	KindTemporal
	KindBit
)

// KindOf 第一段映射：(线上类型, 标志位) -> 粗分类
func KindOf(t MySQLType, fs ColumnFlags) Kind {
	switch t {
	case MySQLTypeTiny, MySQLTypeShort, MySQLTypeInt24, MySQLTypeLong,
		MySQLTypeLongLong, MySQLTypeYear, MySQLTypeBool:
		return KindInteger
	case MySQLTypeFloat, MySQLTypeDouble:
		return KindFloat
	case MySQLTypeDecimal, MySQLTypeNewDecimal:
		return KindDecimal
	case MySQLTypeTimestamp, MySQLTypeDate, MySQLTypeTime, MySQLTypeDatetime,
		MySQLTypeNewDate, MySQLTypeTimestamp2:
		return KindTemporal
	case MySQLTypeBit:
		return KindBit
	case MySQLTypeJSON, MySQLTypeEnum, MySQLTypeSet:
		return KindText
	case MySQLTypeVarchar, MySQLTypeVarString, MySQLTypeString:
		if fs.Has(ColumnFlagBinary) {
			return KindBinary
		}
		return KindText
	case MySQLTypeTinyBlob, MySQLTypeMediumBlob, MySQLTypeLongBlob, MySQLTypeBlob:
		if fs.Has(ColumnFlagBinary) {
			return KindBinary
		}
		return KindText
	case MySQLTypeGeometry:
		return KindBinary
	default:
		return KindUnknown
	}
}

var (
	scanTypeInt64   = reflect.TypeOf(int64(0))
	scanTypeUint64  = reflect.TypeOf(uint64(0))
	scanTypeFloat32 = reflect.TypeOf(float32(0))
	scanTypeFloat64 = reflect.TypeOf(float64(0))
	scanTypeString  = reflect.TypeOf("")
	scanTypeBytes   = reflect.TypeOf([]byte{})
)

// ScanTypeOf 第二段映射：粗分类(结合符号位) -> 对外暴露的 Go 值类型。
// 文本协议下时间和定点数都以字符串形式交给调用方自行解析
func ScanTypeOf(t MySQLType, fs ColumnFlags) reflect.Type {
	switch KindOf(t, fs) {
	case KindInteger:
		if fs.Has(ColumnFlagUnsigned) {
			return scanTypeUint64
		}
		return scanTypeInt64
	case KindFloat:
		if t == MySQLTypeFloat {
			return scanTypeFloat32
		}
		return scanTypeFloat64
	case KindDecimal, KindText, KindTemporal:
		return scanTypeString
	case KindBinary, KindBit:
		return scanTypeBytes
	default:
		return scanTypeBytes
	}
}

// DatabaseTypeName 列类型的规范名字，给 database/sql 的 ColumnType 用
func DatabaseTypeName(t MySQLType, fs ColumnFlags) string {
	switch t {
	case MySQLTypeDecimal, MySQLTypeNewDecimal:
		return "DECIMAL"
	case MySQLTypeTiny:
		return "TINYINT"
	case MySQLTypeShort:
		return "SMALLINT"
	case MySQLTypeInt24:
		return "MEDIUMINT"
	case MySQLTypeLong:
		return "INT"
	case MySQLTypeLongLong:
		return "BIGINT"
	case MySQLTypeFloat:
		return "FLOAT"
	case MySQLTypeDouble:
		return "DOUBLE"
	case MySQLTypeNULL:
		return "NULL"
	case MySQLTypeTimestamp, MySQLTypeTimestamp2:
		return "TIMESTAMP"
	case MySQLTypeDate, MySQLTypeNewDate:
		return "DATE"
	case MySQLTypeTime, MySQLTypeTime2:
		return "TIME"
	case MySQLTypeDatetime, MySQLTypeDatetime2:
		return "DATETIME"
	case MySQLTypeYear:
		return "YEAR"
	case MySQLTypeBit:
		return "BIT"
	case MySQLTypeJSON:
		return "JSON"
	case MySQLTypeEnum:
		return "ENUM"
	case MySQLTypeSet:
		return "SET"
	case MySQLTypeTinyBlob:
		if fs.Has(ColumnFlagBinary) {
			return "TINYBLOB"
		}
		return "TINYTEXT"
	case MySQLTypeMediumBlob:
		if fs.Has(ColumnFlagBinary) {
			return "MEDIUMBLOB"
		}
		return "MEDIUMTEXT"
	case MySQLTypeLongBlob:
		if fs.Has(ColumnFlagBinary) {
			return "LONGBLOB"
		}
		return "LONGTEXT"
	case MySQLTypeBlob:
		if fs.Has(ColumnFlagBinary) {
			return "BLOB"
		}
		return "TEXT"
	case MySQLTypeVarchar, MySQLTypeVarString:
		if fs.Has(ColumnFlagBinary) {
			return "VARBINARY"
		}
		return "VARCHAR"
	case MySQLTypeString:
		if fs.Has(ColumnFlagBinary) {
			return "BINARY"
		}
		return "CHAR"
	case MySQLTypeGeometry:
		return "GEOMETRY"
	default:
		return ""
	}
}
