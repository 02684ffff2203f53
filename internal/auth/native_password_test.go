package auth

import (
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScramble(t *testing.T) {
	// 固定一个 20 字节挑战，用公式独立算一遍期望值
	challenge := []byte{
		0x52, 0x47, 0x29, 0x7c, 0x79, 0x52, 0x3f, 0x4f, 0x7c, 0x3c,
		0x3e, 0x51, 0x6b, 0x32, 0x73, 0x46, 0x4e, 0x21, 0x62, 0x57,
	}

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "普通密码",
			password: "root",
		},
		{
			name:     "长密码",
			password: "a-quite-long-password-with-#symbols!",
		},
		{
			name:     "中文密码",
			password: "密码123",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scramble(challenge, tt.password)
			assert.Equal(t, sha1.Size, len(got))
			assert.Equal(t, expectedScramble(challenge, tt.password), got)
		})
	}
}

func TestScramble_EmptyPassword(t *testing.T) {
	challenge := make([]byte, 20)
	assert.Nil(t, Scramble(challenge, ""))
}

func TestScramble_ChallengeSensitive(t *testing.T) {
	// 同一密码换一个挑战，应答必须不同
	c1 := make([]byte, 20)
	c2 := make([]byte, 20)
	c2[0] = 0x01
	assert.NotEqual(t, Scramble(c1, "root"), Scramble(c2, "root"))
}

// expectedScramble 按 SHA1(password) XOR SHA1(challenge ++ SHA1(SHA1(password))) 逐步算期望值
func expectedScramble(challenge []byte, password string) []byte {
	stage1 := sha1.Sum([]byte(password))
	stage2 := sha1.Sum(stage1[:])

	h := sha1.New()
	h.Write(challenge)
	h.Write(stage2[:])
	want := h.Sum(nil)
	for i := range want {
		want[i] ^= stage1[i]
	}
	return want
}
