package wechat

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handle 是微信服务器回调的 gin 入口，GET 用于接入验证，POST 用于接收消息
func (p *Plugin) Handle(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		defer c.Request.Body.Close()
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			p.log.Warn("read body failed", "error", err)
			body = nil
		}
	}

	out := p.Process(c.Request.Context(), Request{
		Query: c.Request.URL.Query(),
		Body:  body,
	})
	Write(c, out)
}

// Write 将处理结果写回微信服务器
//
// 微信只读取响应内容，失败时同样返回 200。
func Write(c *gin.Context, out Outcome) {
	switch out.Kind {
	case Responded:
		c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(out.Body))
	case NoAction:
		c.String(http.StatusOK, "")
	default:
		c.String(http.StatusOK, out.Body)
	}
}

// Register 在 path 上同时注册 GET 和 POST
func Register(r gin.IRoutes, path string, p *Plugin) {
	r.GET(path, p.Handle)
	r.POST(path, p.Handle)
}
