package wechat

import (
	"context"
	"log/slog"
	"time"

	"github.com/johnqing-424/wechat-shoplist/internal/models"
)

// WelcomeText 是收到文本消息时的默认回复
const WelcomeText = "Welcome to shoplist!"

// Hooks 是各类消息的处理入口，由接入的应用实现
//
// 每个请求最多触发一个 Hook。嵌入 BaseHooks 后只需实现关心的方法。
type Hooks interface {
	OnSubscribe(c *Context)     // 用户关注
	OnUnsubscribe(c *Context)   // 用户取消关注
	OnScan(c *Context)          // 已关注用户扫描二维码
	OnEventLocation(c *Context) // 上报地理位置事件
	OnClick(c *Context)         // 点击自定义菜单
	OnText(c *Context)          // 文本消息
	OnImage(c *Context)         // 图片消息
	OnLocation(c *Context)      // 地理位置消息
	OnLink(c *Context)          // 链接消息
	OnVoice(c *Context)         // 语音消息
	OnUnknown(c *Context)       // 未知类型消息
}

// BaseHooks 提供默认实现：除 OnText 回复欢迎语外均不做处理
type BaseHooks struct{}

// OnSubscribe 用户关注时触发，默认不处理
func (BaseHooks) OnSubscribe(*Context) {}

// OnUnsubscribe 用户取消关注时触发，默认不处理
func (BaseHooks) OnUnsubscribe(*Context) {}

// OnScan 扫描二维码时触发，默认不处理
func (BaseHooks) OnScan(*Context) {}

// OnEventLocation 收到地理位置事件时触发，默认不处理
func (BaseHooks) OnEventLocation(*Context) {}

// OnClick 点击自定义菜单时触发，默认不处理
func (BaseHooks) OnClick(*Context) {}

// OnImage 收到图片消息时触发，默认不处理
func (BaseHooks) OnImage(*Context) {}

// OnLocation 收到地理位置消息时触发，默认不处理
func (BaseHooks) OnLocation(*Context) {}

// OnLink 收到链接消息时触发，默认不处理
func (BaseHooks) OnLink(*Context) {}

// OnVoice 收到语音消息时触发，默认不处理
func (BaseHooks) OnVoice(*Context) {}

// OnUnknown 收到未知类型消息时触发，默认不处理
func (BaseHooks) OnUnknown(*Context) {}

// OnText 收到文本消息时触发，默认回复欢迎语
func (BaseHooks) OnText(c *Context) {
	c.ResponseText(WelcomeText)
}

var _ Hooks = BaseHooks{}

// Context 承载单次请求中 Hook 可用的数据与回复操作
type Context struct {
	ctx      context.Context
	msg      *models.IncomingMessage
	log      *slog.Logger
	now      func() time.Time
	response Response
	body     string
}

// NewContext 创建一个请求上下文，logger 与 now 可为 nil
func NewContext(ctx context.Context, msg *models.IncomingMessage, logger *slog.Logger, now func() time.Time) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if msg == nil {
		msg = models.NewIncomingMessage()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if now == nil {
		now = time.Now
	}
	return &Context{ctx: ctx, msg: msg, log: logger, now: now}
}

// Context 返回请求的 context.Context
func (c *Context) Context() context.Context { return c.ctx }

// Logger 返回请求使用的日志
func (c *Context) Logger() *slog.Logger { return c.log }

// Data 获取本次请求中的字段，不区分大小写；字段不存在时 ok 为 false
func (c *Context) Data(name string) (value string, ok bool) {
	return c.msg.Get(name)
}

// Message 返回完整的请求数据
func (c *Context) Message() *models.IncomingMessage { return c.msg }

// ResponseText 回复文本消息，funcFlag 默认为 0
func (c *Context) ResponseText(content string, funcFlag ...int) {
	c.respond(NewTextResponse(c.msg.FromUserName(), c.msg.ToUserName(), content, flag(funcFlag)))
}

// ResponseMusic 回复音乐消息，funcFlag 默认为 0
func (c *Context) ResponseMusic(title, description, musicURL, hqMusicURL string, funcFlag ...int) {
	c.respond(NewMusicResponse(c.msg.FromUserName(), c.msg.ToUserName(),
		title, description, musicURL, hqMusicURL, flag(funcFlag)))
}

// ResponseNews 回复图文消息，funcFlag 默认为 0
func (c *Context) ResponseNews(items []NewsItem, funcFlag ...int) {
	c.respond(NewNewsResponse(c.msg.FromUserName(), c.msg.ToUserName(), items, flag(funcFlag)))
}

// Responded 判断本次请求是否已经回复
func (c *Context) Responded() bool { return c.response != nil }

// Response 返回已发送的回复，未回复时为 nil
func (c *Context) Response() Response { return c.response }

// 一个请求只回复一次，之后的回复被丢弃
func (c *Context) respond(r Response) {
	if c.response != nil {
		c.log.Warn("response already sent, ignoring", "type", typeName(r))
		return
	}
	c.response = r
	c.body = r.Render(c.now())
}

func flag(funcFlag []int) int {
	if len(funcFlag) == 0 {
		return 0
	}
	return funcFlag[0]
}

func typeName(r Response) string {
	switch r.(type) {
	case *TextResponse:
		return "text"
	case *MusicResponse:
		return "music"
	case *NewsResponse:
		return "news"
	default:
		return "unknown"
	}
}

// Dispatch 分析消息类型，并分发给对应的 Hook，返回触发的 Hook 名称，未触发时为空
//
// event 类型中未识别的事件不会触发任何 Hook。
func Dispatch(c *Context, h Hooks) string {
	switch c.msg.MsgType() {
	case "event":
		switch c.msg.Event() {
		case "subscribe":
			h.OnSubscribe(c)
			return "subscribe"
		case "unsubscribe":
			h.OnUnsubscribe(c)
			return "unsubscribe"
		case "SCAN":
			h.OnScan(c)
			return "scan"
		case "LOCATION":
			h.OnEventLocation(c)
			return "event_location"
		case "CLICK":
			h.OnClick(c)
			return "click"
		}
		return ""
	case "text":
		h.OnText(c)
		return "text"
	case "image":
		h.OnImage(c)
		return "image"
	case "location":
		h.OnLocation(c)
		return "location"
	case "link":
		h.OnLink(c)
		return "link"
	case "voice":
		h.OnVoice(c)
		return "voice"
	default:
		h.OnUnknown(c)
		return "unknown"
	}
}
