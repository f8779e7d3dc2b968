package wechat

import (
	"fmt"
	"strings"
	"time"
)

// Response 是被动回复给微信的消息
type Response interface {
	// Render 使用 createTime 作为 CreateTime 生成回复 XML
	Render(createTime time.Time) string
	// String 使用当前时间生成回复 XML
	String() string
}

// ReplyHeader 是所有回复共用的字段
//
// 回复时收发方与收到的消息相反：ToUserName 为用户的 OpenID，FromUserName 为公众号。
// FuncFlag 非 0 时星标刚收到的消息。
type ReplyHeader struct {
	ToUserName   string
	FromUserName string
	FuncFlag     int
}

// 微信标准XML格式，必须使用<xml>作为根元素
const textTemplate = `<xml>
  <ToUserName><![CDATA[%s]]></ToUserName>
  <FromUserName><![CDATA[%s]]></FromUserName>
  <CreateTime>%d</CreateTime>
  <MsgType><![CDATA[text]]></MsgType>
  <Content><![CDATA[%s]]></Content>
  <FuncFlag>%d</FuncFlag>
</xml>`

const musicTemplate = `<xml>
  <ToUserName><![CDATA[%s]]></ToUserName>
  <FromUserName><![CDATA[%s]]></FromUserName>
  <CreateTime>%d</CreateTime>
  <MsgType><![CDATA[music]]></MsgType>
  <Music>
    <Title><![CDATA[%s]]></Title>
    <Description><![CDATA[%s]]></Description>
    <MusicUrl><![CDATA[%s]]></MusicUrl>
    <HQMusicUrl><![CDATA[%s]]></HQMusicUrl>
  </Music>
  <FuncFlag>%d</FuncFlag>
</xml>`

const newsTemplate = `<xml>
  <ToUserName><![CDATA[%s]]></ToUserName>
  <FromUserName><![CDATA[%s]]></FromUserName>
  <CreateTime>%d</CreateTime>
  <MsgType><![CDATA[news]]></MsgType>
  <ArticleCount>%d</ArticleCount>
  <Articles>
    %s
  </Articles>
  <FuncFlag>%d</FuncFlag>
</xml>`

const newsItemTemplate = `<item>
  <Title><![CDATA[%s]]></Title>
  <Description><![CDATA[%s]]></Description>
  <PicUrl><![CDATA[%s]]></PicUrl>
  <Url><![CDATA[%s]]></Url>
</item>`

// TextResponse 是文本回复
type TextResponse struct {
	ReplyHeader
	Content string
}

// NewTextResponse 创建文本回复
func NewTextResponse(toUser, fromUser, content string, funcFlag int) *TextResponse {
	return &TextResponse{
		ReplyHeader: ReplyHeader{ToUserName: toUser, FromUserName: fromUser, FuncFlag: funcFlag},
		Content:     content,
	}
}

// Render 生成文本回复 XML
func (r *TextResponse) Render(createTime time.Time) string {
	return fmt.Sprintf(textTemplate, r.ToUserName, r.FromUserName, createTime.Unix(), r.Content, r.FuncFlag)
}

// String 使用当前时间生成文本回复 XML
func (r *TextResponse) String() string { return r.Render(time.Now()) }

// MusicResponse 是音乐回复，HQMusicURL 在 Wi-Fi 环境下优先使用
type MusicResponse struct {
	ReplyHeader
	Title       string
	Description string
	MusicURL    string
	HQMusicURL  string
}

// NewMusicResponse 创建音乐回复
func NewMusicResponse(toUser, fromUser, title, description, musicURL, hqMusicURL string, funcFlag int) *MusicResponse {
	return &MusicResponse{
		ReplyHeader: ReplyHeader{ToUserName: toUser, FromUserName: fromUser, FuncFlag: funcFlag},
		Title:       title,
		Description: description,
		MusicURL:    musicURL,
		HQMusicURL:  hqMusicURL,
	}
}

// Render 生成音乐回复 XML
func (r *MusicResponse) Render(createTime time.Time) string {
	return fmt.Sprintf(musicTemplate, r.ToUserName, r.FromUserName, createTime.Unix(),
		r.Title, r.Description, r.MusicURL, r.HQMusicURL, r.FuncFlag)
}

// String 使用当前时间生成音乐回复 XML
func (r *MusicResponse) String() string { return r.Render(time.Now()) }

// NewsItem 是图文回复中的单条图文，只能组合进 NewsResponse 发送
type NewsItem struct {
	Title       string
	Description string
	PicURL      string
	URL         string
}

// String 生成单条 <item> 片段
func (i NewsItem) String() string {
	return fmt.Sprintf(newsItemTemplate, i.Title, i.Description, i.PicURL, i.URL)
}

// NewsResponse 是图文回复，ArticleCount 始终等于 Items 的数量
type NewsResponse struct {
	ReplyHeader
	Items []NewsItem
}

// NewNewsResponse 创建图文回复
func NewNewsResponse(toUser, fromUser string, items []NewsItem, funcFlag int) *NewsResponse {
	return &NewsResponse{
		ReplyHeader: ReplyHeader{ToUserName: toUser, FromUserName: fromUser, FuncFlag: funcFlag},
		Items:       items,
	}
}

// Render 生成图文回复 XML，Articles 按 Items 顺序拼接
func (r *NewsResponse) Render(createTime time.Time) string {
	var articles strings.Builder
	for _, item := range r.Items {
		articles.WriteString(item.String())
	}
	return fmt.Sprintf(newsTemplate, r.ToUserName, r.FromUserName, createTime.Unix(),
		len(r.Items), articles.String(), r.FuncFlag)
}

// String 使用当前时间生成图文回复 XML
func (r *NewsResponse) String() string { return r.Render(time.Now()) }
