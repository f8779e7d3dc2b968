package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/johnqing-424/wechat-shoplist/internal/config"
	"github.com/johnqing-424/wechat-shoplist/internal/logging"
	"github.com/johnqing-424/wechat-shoplist/internal/shoplist"
	"github.com/johnqing-424/wechat-shoplist/internal/wechat"
)

func main() {
	// .env 不存在时忽略
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env")
	}

	// 获取配置
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer closer.Close()

	plugin := wechat.NewPlugin(cfg.WeChat.Token, shoplist.NewHooks(), wechat.WithLogger(logger))

	r := gin.Default()

	// 微信接入验证（GET 请求）与接收用户消息（POST 请求）
	wechat.Register(r, cfg.WeChat.Path, plugin)

	// 启动 Gin Web 服务
	portAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := r.Run(portAddr); err != nil {
		panic(err)
	}
}
