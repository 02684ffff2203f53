package packet

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// 常用字符集编号
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_character_set.html
const (
	CharSetLatin1SwedishCi  uint32 = 8
	CharSetAsciiGeneralCi   uint32 = 11
	CharSetUtf8GeneralCi    uint32 = 33
	CharSetUtf8mb4GeneralCi uint32 = 45
	CharSetBinary           uint32 = 63
	CharSetUtf8mb40900AiCi  uint32 = 255
)

// 字符集名到默认 collation 编号的映射，
// 握手响应里的 character_set 字段只有一个字节，所以只取低 8 位够用的这些
var collationIDs = map[string]uint8{
	"latin1":  uint8(CharSetLatin1SwedishCi),
	"ascii":   uint8(CharSetAsciiGeneralCi),
	"utf8":    uint8(CharSetUtf8GeneralCi),
	"utf8mb3": uint8(CharSetUtf8GeneralCi),
	"utf8mb4": uint8(CharSetUtf8mb4GeneralCi),
	"binary":  uint8(CharSetBinary),
}

// CollationID 字符集名对应的默认 collation 编号
func CollationID(charset string) (uint8, bool) {
	id, ok := collationIDs[charset]
	return id, ok
}

// MySQL 的 latin1 实际上是 cp1252 的超集，这里取 cp1252
var charsetDecoders = map[uint32]*charmap.Charmap{
	CharSetLatin1SwedishCi: charmap.Windows1252,
}

// DecoderOf 列字符集对应的解码器。utf8 一族和 ascii 直接透传，返回 nil
func DecoderOf(charsetID uint32) *encoding.Decoder {
	if cm, ok := charsetDecoders[charsetID]; ok {
		return cm.NewDecoder()
	}
	return nil
}

// DecodeText 按列字符集把原始字节解码成 UTF-8 字符串。
// 解码失败时退回原始字节的直接转换，调用方拿到的至少是原数据
func DecodeText(charsetID uint32, data []byte) string {
	dec := DecoderOf(charsetID)
	if dec == nil {
		return string(data)
	}
	decoded, err := dec.Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
