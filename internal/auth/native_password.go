// Package auth 实现 mysql_native_password 的挑战应答计算
package auth

import "crypto/sha1"

// Scramble 根据服务端下发的挑战随机数和明文密码算出应答：
//
//	stage1 = SHA1(password)
//	stage2 = SHA1(stage1)
//	stage3 = SHA1(challenge ++ stage2)
//	应答   = stage1 XOR stage3
//
// 应答和一个 SHA1 摘要等长（20 字节）。
// 空密码返回空应答，向服务端表示免密登录。
// 纯函数，不保留密码
func Scramble(challenge []byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}

	crypt := sha1.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1)
	stage2 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(challenge)
	crypt.Write(stage2)
	scramble := crypt.Sum(nil)

	for i := range scramble {
		scramble[i] ^= stage1[i]
	}
	return scramble
}

// PluginName 本驱动唯一支持的鉴权插件
const PluginName = "mysql_native_password"
