package flags

// CapabilityFlags 是连接双方协商出来的功能特性集合。
// 客户端在握手响应里提出自己要的，服务端在问候报文里广播自己有的，
// 两者按位与之后的结果在整个连接生命周期内不再变化
type CapabilityFlags uint64

func (flags CapabilityFlags) Has(flag CapabilityFlag) bool {
	return uint64(flags)&uint64(flag) > 0
}

func (flags CapabilityFlags) And(server CapabilityFlags) CapabilityFlags {
	return flags & server
}

// NewCapabilityFlags 把若干单项标志合成一个集合
func NewCapabilityFlags(fs ...CapabilityFlag) CapabilityFlags {
	var res CapabilityFlags
	for _, f := range fs {
		res |= CapabilityFlags(f)
	}
	return res
}

// CapabilityFlag
// https://dev.mysql.com/doc/dev/mysql-server/latest/group__group__cs__capabilities__flags.html
type CapabilityFlag uint64

const (
	ClientLongPassword CapabilityFlag = 1 << iota
	ClientFoundRows
	ClientLongFlag
	ClientConnectWithDB
	ClientNoSchema
	ClientCompress
	ClientODBC
	ClientLocalFiles
	ClientIgnoreSpace
	ClientProtocol41
	ClientInteractive
	ClientSSL
	ClientIgnoreSIGPIPE
	ClientTransactions
	ClientReserved
	ClientSecureConnection
	ClientMultiStatements
	ClientMultiResults
	ClientPSMultiResults
	ClientPluginAuth
	ClientConnectAttrs
	ClientPluginAuthLenEncClientData
	ClientCanHandleExpiredPasswords
	ClientSessionTrack
	ClientDeprecateEOF
	ClientOptionalResultsetMetadata
	ClientZstdCompressionAlgorithm
	ClientQueryAttributes
)
