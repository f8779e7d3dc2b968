package wechat

import (
	"net/url"

	"github.com/johnqing-424/wechat-shoplist/internal/models"
)

// Sign 按微信规则计算 token、timestamp、nonce 的签名
func Sign(token, timestamp, nonce string) string {
	return models.Credentials{Token: token, Timestamp: timestamp, Nonce: nonce}.Signature()
}

// CheckSignature 判断 signature 是否与 token、timestamp、nonce 的签名一致
func CheckSignature(token, signature, timestamp, nonce string) bool {
	return Sign(token, timestamp, nonce) == signature
}

// lastValue 返回参数的最后一个值，重复参数以最后一个为准
func lastValue(q url.Values, key string) (string, bool) {
	vs := q[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// VerifyQuery 校验请求参数中的签名，signature、timestamp、nonce 任一缺失都视为失败
//
// 参数重复出现时取最后一个值。
func VerifyQuery(token string, q url.Values) bool {
	signature, ok1 := lastValue(q, "signature")
	timestamp, ok2 := lastValue(q, "timestamp")
	nonce, ok3 := lastValue(q, "nonce")
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	return CheckSignature(token, signature, timestamp, nonce)
}

// OwnershipProbe 判断是否为公众平台设置 URL 时的接入验证请求，并返回 echostr 原值
//
// 只应在签名校验通过之后调用。
func OwnershipProbe(q url.Values) (string, bool) {
	return lastValue(q, "echostr")
}
