package shoplist

import (
	"github.com/johnqing-424/wechat-shoplist/internal/wechat"
)

const (
	// SubscribeText 是关注时的欢迎语
	SubscribeText = "感谢关注购物清单！直接发送文字即可开始使用。"
	// UnknownText 是收到不支持的消息时的提示
	UnknownText = "暂不支持该类型的消息，请发送文字。"

	// MenuLatest 是自定义菜单“最新推荐”的 EventKey
	MenuLatest = "MENU_LATEST"
)

// Hooks 是购物清单公众号的消息处理，文本消息沿用默认欢迎语
type Hooks struct {
	wechat.BaseHooks

	// Articles 是点击菜单时按 EventKey 返回的图文
	Articles map[string][]wechat.NewsItem
	// Music 是收到语音消息时回复的音乐，为 nil 时不回复
	Music *wechat.MusicResponse
}

// NewHooks 创建带默认菜单图文的 Hooks
func NewHooks() *Hooks {
	return &Hooks{
		Articles: map[string][]wechat.NewsItem{
			MenuLatest: {
				{
					Title:       "本周清单",
					Description: "大家最常购买的商品",
					PicURL:      "https://shoplist.example.com/static/weekly.png",
					URL:         "https://shoplist.example.com/weekly",
				},
				{
					Title:       "省钱技巧",
					Description: "如何用清单减少冲动消费",
					PicURL:      "https://shoplist.example.com/static/tips.png",
					URL:         "https://shoplist.example.com/tips",
				},
			},
		},
	}
}

// OnSubscribe 回复关注欢迎语
func (h *Hooks) OnSubscribe(c *wechat.Context) {
	c.ResponseText(SubscribeText)
}

// OnClick 按菜单 EventKey 回复图文，未配置的菜单不回复
func (h *Hooks) OnClick(c *wechat.Context) {
	key, _ := c.Data("EventKey")
	items, ok := h.Articles[key]
	if !ok || len(items) == 0 {
		c.Logger().Info("no articles for menu", "event_key", key)
		return
	}
	c.ResponseNews(items)
}

// OnVoice 回复配置的音乐
func (h *Hooks) OnVoice(c *wechat.Context) {
	if h.Music == nil {
		return
	}
	c.ResponseMusic(h.Music.Title, h.Music.Description, h.Music.MusicURL, h.Music.HQMusicURL, h.Music.FuncFlag)
}

// OnUnknown 提示只支持文字消息
func (h *Hooks) OnUnknown(c *wechat.Context) {
	c.ResponseText(UnknownText)
}
