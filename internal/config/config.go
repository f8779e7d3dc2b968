package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config 是配置的根结构体
type Config struct {
	WeChat WeChatConfig `yaml:"wechat" envconfig:"WECHAT"`
	Server ServerConfig `yaml:"server" envconfig:"SERVER"`
	Log    LogConfig    `yaml:"log" envconfig:"LOG"`
}

// WeChatConfig 包含公众号接入相关配置
type WeChatConfig struct {
	Token string `yaml:"token"`
	Path  string `yaml:"path"`
}

// ServerConfig 包含服务器相关配置
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig 包含日志相关配置，FilePath 为空时不写日志
type LogConfig struct {
	FilePath string `yaml:"file_path" split_words:"true"`
	Level    string `yaml:"level"`
}

// EnvPrefix 是环境变量覆盖配置时使用的前缀，例如 SHOPLIST_WECHAT_TOKEN
const EnvPrefix = "SHOPLIST"

// DefaultPaths 是查找配置文件的默认位置
func DefaultPaths() []string {
	return []string{
		"config.yml",    // 当前目录
		"../config.yml", // 上级目录
		filepath.Join(os.Getenv("HOME"), "config.yml"), // 用户主目录
	}
}

var (
	config     *Config
	configErr  error
	configOnce sync.Once
)

// GetConfig 返回配置单例
//
// 找不到配置文件时使用默认值；配置文件存在但无法解析或校验失败时返回错误。
func GetConfig() (*Config, error) {
	configOnce.Do(func() {
		config, configErr = LoadOrDefault(DefaultPaths()...)
	})

	return config, configErr
}

// LoadOrDefault 与 Load 相同，但所有配置文件都不存在时回退到默认值加环境变量
func LoadOrDefault(paths ...string) (*Config, error) {
	cfg, err := Load(paths...)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	log.Printf("加载配置文件失败: %v，将使用默认值\n", err)
	cfg = Default()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("读取环境变量失败: %w", err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 依次尝试 paths 中的配置文件，读取第一个存在的文件，再用环境变量覆盖
//
// 所有文件都不存在时返回的错误满足 errors.Is(err, os.ErrNotExist)。
func Load(paths ...string) (*Config, error) {
	cfg := Default()

	var configData []byte
	var err error

	if len(paths) == 0 {
		err = os.ErrNotExist
	}
	for _, path := range paths {
		configData, err = os.ReadFile(path)
		if err == nil {
			log.Printf("从 %s 加载配置\n", path)
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %v", path, err)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("无法找到配置文件: %w", err)
	}

	if err := yaml.Unmarshal(configData, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("读取环境变量失败: %v", err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		WeChat: WeChatConfig{
			Token: "shoplist_token",
			Path:  DefaultPath,
		},
		Server: ServerConfig{
			Port: 8000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath 是未配置 wechat.path 时的回调路径
const DefaultPath = "/wechat"

// applyDefaults 补全配置文件中显式留空的可选项
func applyDefaults(c *Config) {
	if c.WeChat.Path == "" {
		c.WeChat.Path = DefaultPath
	}
}

// Validate 检查配置是否有效，不修改配置
func (c *Config) Validate() error {
	if c.WeChat.Token == "" {
		return fmt.Errorf("wechat.token 不能为空")
	}
	if !strings.HasPrefix(c.WeChat.Path, "/") {
		return fmt.Errorf("wechat.path 必须以 / 开头: %q", c.WeChat.Path)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 无效: %d", c.Server.Port)
	}
	return nil
}
