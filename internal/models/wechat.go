package models

import "strings"

// IncomingMessage 是解析后的微信推送消息，字段名不区分大小写
type IncomingMessage struct {
	keys   []string
	values map[string]string
}

// NewIncomingMessage 创建一个空消息
func NewIncomingMessage() *IncomingMessage {
	return &IncomingMessage{values: make(map[string]string)}
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Set 写入字段，重复写入时保留最后一次的值和首次出现的位置
func (m *IncomingMessage) Set(key, value string) {
	k := normalizeKey(key)
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = value
}

// Get 读取字段，字段不存在时 ok 为 false
func (m *IncomingMessage) Get(key string) (value string, ok bool) {
	if m == nil {
		return "", false
	}
	value, ok = m.values[normalizeKey(key)]
	return value, ok
}

// Value 读取字段，不存在时返回空字符串
func (m *IncomingMessage) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

// Keys 按出现顺序返回小写字段名
func (m *IncomingMessage) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All 返回全部字段的副本
func (m *IncomingMessage) All() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Len 返回字段数量
func (m *IncomingMessage) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// ToUserName 返回接收方，即公众号原始 ID
func (m *IncomingMessage) ToUserName() string { return m.Value("tousername") }

// FromUserName 返回发送方，即用户 OpenID
func (m *IncomingMessage) FromUserName() string { return m.Value("fromusername") }

// MsgType 返回消息类型
func (m *IncomingMessage) MsgType() string { return m.Value("msgtype") }

// Event 返回事件类型，仅 event 消息有值
func (m *IncomingMessage) Event() string { return m.Value("event") }

// EventKey 返回事件 KEY，例如自定义菜单的 key
func (m *IncomingMessage) EventKey() string { return m.Value("eventkey") }

// Content 返回文本消息内容
func (m *IncomingMessage) Content() string { return m.Value("content") }

// MsgID 返回消息 ID
func (m *IncomingMessage) MsgID() string { return m.Value("msgid") }
