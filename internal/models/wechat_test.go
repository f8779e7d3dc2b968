package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomingMessageCaseInsensitive(t *testing.T) {
	m := NewIncomingMessage()
	m.Set("MsgType", "text")

	for _, key := range []string{"msgtype", "MSGTYPE", "MsgType"} {
		v, ok := m.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, "text", v, key)
	}

	_, ok := m.Get("content")
	assert.False(t, ok)
	assert.Equal(t, "", m.Value("content"))
}

func TestIncomingMessageOrderAndOverwrite(t *testing.T) {
	m := NewIncomingMessage()
	m.Set("ToUserName", "A")
	m.Set("FromUserName", "B")
	m.Set("TOUSERNAME", "C")

	assert.Equal(t, []string{"tousername", "fromusername"}, m.Keys())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "C", m.ToUserName())
	assert.Equal(t, map[string]string{"tousername": "C", "fromusername": "B"}, m.All())

	all := m.All()
	all["tousername"] = "changed"
	assert.Equal(t, "C", m.ToUserName())
}

func TestIncomingMessageNil(t *testing.T) {
	var m *IncomingMessage
	_, ok := m.Get("msgtype")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.All())
	assert.Nil(t, m.Keys())
}

func TestCredentialsSignature(t *testing.T) {
	c := Credentials{Token: "token", Timestamp: "123", Nonce: "abc"}
	assert.Equal(t, "84501b652458690801074dc0b44e9822dfb63245", c.Signature())

	// 顺序无关
	swapped := Credentials{Token: "abc", Timestamp: "token", Nonce: "123"}
	assert.Equal(t, c.Signature(), swapped.Signature())
}
