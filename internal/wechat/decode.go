package wechat

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/johnqing-424/wechat-shoplist/internal/models"
	"golang.org/x/net/html/charset"
)

// ErrMissingPayload 表示请求体为空或不是合法的 XML
var ErrMissingPayload = errors.New("缺少数据")

// DecodeMessage 将微信推送的 XML 解析为字段名小写的消息
//
// CDATA 按普通文本处理；只保留根元素的直接子元素，嵌套元素的文本并入其顶层字段。
// XML 声明中的 encoding（如 GBK）会先转换为 UTF-8。
func DecodeMessage(body []byte) (*models.IncomingMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: 请求体为空", ErrMissingPayload)
	}

	d := xml.NewDecoder(bytes.NewReader(body))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	msg := models.NewIncomingMessage()
	var (
		depth   int
		sawRoot bool
		field   string
		text    strings.Builder
	)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: XML 解析失败: %v", ErrMissingPayload, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if sawRoot {
					return nil, fmt.Errorf("%w: 存在多个根元素", ErrMissingPayload)
				}
				sawRoot = true
			}
			depth++
			if depth == 2 {
				field = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth >= 2 {
				text.Write(t)
			} else if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: 根元素外存在文本", ErrMissingPayload)
			}
		case xml.EndElement:
			if depth == 2 {
				msg.Set(field, text.String())
			}
			depth--
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: 缺少根元素", ErrMissingPayload)
	}

	return msg, nil
}
