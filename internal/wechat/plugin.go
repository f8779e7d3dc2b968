package wechat

import (
	"context"
	"log/slog"
	"net/url"
	"time"
)

const (
	// DeniedBody 是签名校验失败时的响应内容
	DeniedBody = "签名验证失败"
	// MissingPayloadBody 是缺少或无法解析请求体时的响应内容
	MissingPayloadBody = "缺少数据"
)

// OutcomeKind 表示一次请求的处理结果
type OutcomeKind int

const (
	// NoAction 表示没有 Hook 回复
	NoAction OutcomeKind = iota
	// Denied 表示签名校验失败
	Denied
	// OwnershipEcho 表示接入验证，Body 为 echostr
	OwnershipEcho
	// MissingPayload 表示请求体缺失或不是合法的 XML
	MissingPayload
	// Responded 表示 Hook 已回复，Body 为回复 XML
	Responded
)

// String 返回结果类型的名称，用于日志
func (k OutcomeKind) String() string {
	switch k {
	case NoAction:
		return "no_action"
	case Denied:
		return "denied"
	case OwnershipEcho:
		return "ownership_echo"
	case MissingPayload:
		return "missing_payload"
	case Responded:
		return "responded"
	default:
		return "unknown"
	}
}

// Outcome 是一次请求的最终结果，由 HTTP 层决定如何结束请求
type Outcome struct {
	Kind OutcomeKind
	Body string
	// Hook 是触发的 Hook 名称，仅在消息已分发时有值
	Hook string
}

// Request 是一次回调请求中用到的数据
type Request struct {
	Query url.Values
	Body  []byte
}

// Plugin 负责校验、解析并分发微信推送
type Plugin struct {
	token string
	hooks Hooks
	log   *slog.Logger
	now   func() time.Time
}

// Option 配置 Plugin
type Option func(*Plugin)

// WithLogger 设置日志，未设置时不写日志
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithClock 设置生成 CreateTime 使用的时钟
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPlugin 创建 Plugin，hooks 为 nil 时使用 BaseHooks
func NewPlugin(token string, hooks Hooks, opts ...Option) *Plugin {
	if hooks == nil {
		hooks = BaseHooks{}
	}
	p := &Plugin{
		token: token,
		hooks: hooks,
		log:   slog.New(slog.DiscardHandler),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process 依次完成签名校验、接入验证、消息解析和分发
func (p *Plugin) Process(ctx context.Context, req Request) Outcome {
	if !VerifyQuery(p.token, req.Query) {
		p.log.Info("signature failed")
		return Outcome{Kind: Denied, Body: DeniedBody}
	}

	if echostr, ok := OwnershipProbe(req.Query); ok {
		p.log.Info("valid URL requested")
		return Outcome{Kind: OwnershipEcho, Body: echostr}
	}

	msg, err := DecodeMessage(req.Body)
	if err != nil {
		p.log.Info("no POST data", "error", err)
		return Outcome{Kind: MissingPayload, Body: MissingPayloadBody}
	}

	c := NewContext(ctx, msg, p.log, p.now)
	hook := Dispatch(c, p.hooks)
	p.log.Debug("message dispatched",
		"msgtype", msg.MsgType(), "event", msg.Event(), "hook", hook, "from", msg.FromUserName())

	if !c.Responded() {
		return Outcome{Kind: NoAction, Hook: hook}
	}
	return Outcome{Kind: Responded, Body: c.body, Hook: hook}
}
