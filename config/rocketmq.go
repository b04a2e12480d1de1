package config

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`

	Consumer Consumer `yaml:"consumer"`

	// 行为事件投递的 topic，为空时直接写库
	ActivityTopic string `yaml:"activity_topic"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type Consumer struct {
	Group string `yaml:"group"`
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	if cfg.RocketMQ == nil {
		return &RocketMQConfig{}
	}
	return cfg.RocketMQ
}

// Enabled 是否配置了消息队列
func (c *RocketMQConfig) Enabled() bool {
	return c != nil && len(c.NameServer) > 0 && c.ActivityTopic != ""
}
