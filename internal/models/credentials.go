package models

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
)

// Credentials 是参与签名的三元组：接入 Token 与请求中的 timestamp、nonce
type Credentials struct {
	Token     string
	Timestamp string
	Nonce     string
}

// Signature 计算微信接入签名
//
// 1. 将 token、timestamp、nonce 三个参数按字典序排序
// 2. 拼接成一个字符串进行 sha1 加密
func (c Credentials) Signature() string {
	strs := []string{c.Token, c.Timestamp, c.Nonce}
	sort.Strings(strs)

	h := sha1.New()
	h.Write([]byte(strings.Join(strs, "")))
	return fmt.Sprintf("%x", h.Sum(nil))
}
