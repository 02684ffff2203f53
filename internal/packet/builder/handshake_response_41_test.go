package builder

import (
	"testing"

	"github.com/meoying/mysqldriver/internal/flags"
	"github.com/stretchr/testify/assert"
)

func TestHandshakeResponse41_Build(t *testing.T) {
	authResponse := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14,
	}

	tests := []struct {
		name string
		resp HandshakeResponse41
		want []byte
	}{
		{
			name: "带初始数据库",
			resp: HandshakeResponse41{
				ClientFlags: flags.NewCapabilityFlags(
					flags.ClientLongPassword,
					flags.ClientConnectWithDB,
					flags.ClientProtocol41,
					flags.ClientSecureConnection,
				),
				MaxPacketSize: 1<<24 - 1,
				CharacterSet:  0x2d,
				Username:      "root",
				AuthResponse:  authResponse,
				Database:      "test",
			},
			want: func() []byte {
				p := []byte{
					0x09, 0x82, 0x00, 0x00, // client_flag
					0xff, 0xff, 0xff, 0x00, // max_packet_size
					0x2d, // character_set utf8mb4
				}
				p = append(p, make([]byte, 23)...)                  // filler
				p = append(p, 'r', 'o', 'o', 't', 0x00)             // username
				p = append(p, 0x14)                                 // auth_response_length
				p = append(p, authResponse...)                      // auth_response
				p = append(p, 't', 'e', 's', 't', 0x00)             // database
				return p
			}(),
		},
		{
			name: "没协商ClientConnectWithDB就不带数据库段",
			resp: HandshakeResponse41{
				ClientFlags: flags.NewCapabilityFlags(
					flags.ClientProtocol41,
					flags.ClientSecureConnection,
				),
				MaxPacketSize: 1<<24 - 1,
				CharacterSet:  0x2d,
				Username:      "root",
				AuthResponse:  authResponse,
				Database:      "test",
			},
			want: func() []byte {
				p := []byte{
					0x00, 0x82, 0x00, 0x00, // client_flag
					0xff, 0xff, 0xff, 0x00, // max_packet_size
					0x2d, // character_set
				}
				p = append(p, make([]byte, 23)...)      // filler
				p = append(p, 'r', 'o', 'o', 't', 0x00) // username
				p = append(p, 0x14)                     // auth_response_length
				p = append(p, authResponse...)          // auth_response
				return p
			}(),
		},
		{
			name: "空密码的免密应答",
			resp: HandshakeResponse41{
				ClientFlags: flags.NewCapabilityFlags(
					flags.ClientProtocol41,
					flags.ClientSecureConnection,
				),
				MaxPacketSize: 1<<24 - 1,
				CharacterSet:  0x08,
				Username:      "guest",
			},
			want: func() []byte {
				p := []byte{
					0x00, 0x82, 0x00, 0x00, // client_flag
					0xff, 0xff, 0xff, 0x00, // max_packet_size
					0x08, // character_set latin1
				}
				p = append(p, make([]byte, 23)...)           // filler
				p = append(p, 'g', 'u', 'e', 's', 't', 0x00) // username
				p = append(p, 0x00)                          // auth_response_length
				return p
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.resp.Build()
			// 前四个字节留给报文头
			assert.Equal(t, make([]byte, 4), got[:4])
			assert.Equal(t, tt.want, got[4:])
		})
	}
}
