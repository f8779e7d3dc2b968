package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnqing-424/wechat-shoplist/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New 根据配置创建日志，FilePath 为空时返回不输出的日志
//
// 返回的 io.Closer 用于在退出时关闭日志文件。
func New(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if cfg.FilePath == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	if dir := filepath.Dir(cfg.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}

	return NewWriter(f, cfg.Level), f, nil
}

// NewWriter 创建写入 w 的按行文本日志
func NewWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel 解析日志级别，无法识别时为 info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
