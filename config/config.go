package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App            `json:"app" yaml:"app"`
	Redis     *Redis          `json:"redis" yaml:"redis"`
	MySQL     *MySQL          `json:"mysql" yaml:"mysql"`
	Jwt       *Jwt            `json:"jwt" yaml:"jwt"`
	Server    *Server         `json:"server" yaml:"server"`
	RocketMQ  *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Recommend *Recommend      `json:"recommend" yaml:"recommend"`
	Stats     *Stats          `json:"stats" yaml:"stats"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
	// 单次推荐请求的超时时间（毫秒），0 表示不限制
	RequestTimeoutMs int `json:"request_timeout_ms" yaml:"request_timeout_ms"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}
	return conf
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	if conf.App == nil {
		conf.App = &App{}
	}
	if conf.Server == nil {
		conf.Server = &Server{Http: 8080}
	}
	if conf.Jwt == nil {
		conf.Jwt = &Jwt{}
	}
	if conf.MySQL == nil {
		conf.MySQL = &MySQL{}
	}
	if conf.Redis == nil {
		conf.Redis = &Redis{}
	}
	conf.Recommend = conf.Recommend.WithDefaults()
	conf.Stats = conf.Stats.WithDefaults()
	return &conf, nil
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

func ProvideRecommendConfig(cfg *Config) *Recommend {
	return cfg.Recommend
}

func ProvideStatsConfig(cfg *Config) *Stats {
	return cfg.Stats
}
