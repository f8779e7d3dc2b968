package wechat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnqing-424/wechat-shoplist/internal/models"
)

// recordingHooks 记录被触发的 Hook
type recordingHooks struct {
	calls []string
}

func (h *recordingHooks) OnSubscribe(*Context)     { h.calls = append(h.calls, "subscribe") }
func (h *recordingHooks) OnUnsubscribe(*Context)   { h.calls = append(h.calls, "unsubscribe") }
func (h *recordingHooks) OnScan(*Context)          { h.calls = append(h.calls, "scan") }
func (h *recordingHooks) OnEventLocation(*Context) { h.calls = append(h.calls, "event_location") }
func (h *recordingHooks) OnClick(*Context)         { h.calls = append(h.calls, "click") }
func (h *recordingHooks) OnText(*Context)          { h.calls = append(h.calls, "text") }
func (h *recordingHooks) OnImage(*Context)         { h.calls = append(h.calls, "image") }
func (h *recordingHooks) OnLocation(*Context)      { h.calls = append(h.calls, "location") }
func (h *recordingHooks) OnLink(*Context)          { h.calls = append(h.calls, "link") }
func (h *recordingHooks) OnVoice(*Context)         { h.calls = append(h.calls, "voice") }
func (h *recordingHooks) OnUnknown(*Context)       { h.calls = append(h.calls, "unknown") }

func message(fields map[string]string) *models.IncomingMessage {
	m := models.NewIncomingMessage()
	for k, v := range fields {
		m.Set(k, v)
	}
	return m
}

func TestDispatchTable(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   []string
	}{
		{"text", map[string]string{"msgtype": "text"}, []string{"text"}},
		{"image", map[string]string{"msgtype": "image"}, []string{"image"}},
		{"location", map[string]string{"msgtype": "location"}, []string{"location"}},
		{"link", map[string]string{"msgtype": "link"}, []string{"link"}},
		{"voice", map[string]string{"msgtype": "voice"}, []string{"voice"}},
		{"subscribe", map[string]string{"msgtype": "event", "event": "subscribe"}, []string{"subscribe"}},
		{"unsubscribe", map[string]string{"msgtype": "event", "event": "unsubscribe"}, []string{"unsubscribe"}},
		{"scan", map[string]string{"msgtype": "event", "event": "SCAN"}, []string{"scan"}},
		{"event location", map[string]string{"msgtype": "event", "event": "LOCATION"}, []string{"event_location"}},
		{"click", map[string]string{"MsgType": "event", "Event": "CLICK"}, []string{"click"}},
		{"bogus event", map[string]string{"msgtype": "event", "event": "bogus"}, nil},
		{"missing event", map[string]string{"msgtype": "event"}, nil},
		{"event is case sensitive", map[string]string{"msgtype": "event", "event": "scan"}, nil},
		{"bogus msgtype", map[string]string{"msgtype": "bogus"}, []string{"unknown"}},
		{"missing msgtype", map[string]string{"content": "hi"}, []string{"unknown"}},
		{"msgtype is case sensitive", map[string]string{"msgtype": "TEXT"}, []string{"unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHooks{}
			c := NewContext(context.Background(), message(tt.fields), nil, nil)
			hook := Dispatch(c, h)
			assert.Equal(t, tt.want, h.calls)
			if len(tt.want) == 0 {
				assert.Empty(t, hook)
			} else {
				assert.Equal(t, tt.want[0], hook)
			}
		})
	}
}

func TestBaseHooksOnTextWelcome(t *testing.T) {
	c := NewContext(context.Background(), message(map[string]string{
		"tousername": "A", "fromusername": "B", "msgtype": "text",
	}), nil, func() time.Time { return fixedTime })

	Dispatch(c, BaseHooks{})

	require.True(t, c.Responded())
	r, ok := c.Response().(*TextResponse)
	require.True(t, ok)
	assert.Equal(t, WelcomeText, r.Content)
	assert.Equal(t, "B", r.ToUserName)
	assert.Equal(t, "A", r.FromUserName)
	assert.Equal(t, 0, r.FuncFlag)
	assert.Equal(t, r.Render(fixedTime), c.body)
}

func TestBaseHooksOthersNoop(t *testing.T) {
	for _, mt := range []string{"image", "location", "link", "voice", "bogus"} {
		c := NewContext(context.Background(), message(map[string]string{"msgtype": mt}), nil, nil)
		Dispatch(c, BaseHooks{})
		assert.False(t, c.Responded(), mt)
	}
}

func TestContextFirstResponseWins(t *testing.T) {
	c := NewContext(context.Background(), message(map[string]string{"fromusername": "B", "tousername": "A"}), nil, nil)

	c.ResponseText("first", 1)
	c.ResponseMusic("t", "d", "m", "hq")
	c.ResponseNews([]NewsItem{{Title: "x"}})

	r, ok := c.Response().(*TextResponse)
	require.True(t, ok)
	assert.Equal(t, "first", r.Content)
	assert.Equal(t, 1, r.FuncFlag)
}

func TestContextData(t *testing.T) {
	c := NewContext(context.Background(), message(map[string]string{"EventKey": "MENU"}), nil, nil)

	v, ok := c.Data("eventkey")
	assert.True(t, ok)
	assert.Equal(t, "MENU", v)

	_, ok = c.Data("Ticket")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"eventkey": "MENU"}, c.Message().All())
	assert.NotNil(t, c.Context())
}
