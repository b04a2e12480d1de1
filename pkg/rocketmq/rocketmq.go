package rocketmq

import (
	"Agora/config"
	"Agora/pkg/log"
	"Agora/types"
	"context"
	"encoding/json"
	"fmt"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// ActivityProducer 投递话题行为事件
type ActivityProducer struct {
	producer rocketmq.Producer
	topic    string
}

// NewActivityProducer 未配置消息队列时返回 nil，调用方退回同步写库
func NewActivityProducer(cfg *config.RocketMQConfig) (*ActivityProducer, func(), error) {
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create rocketmq producer: %w", err)
	}
	if err = p.Start(); err != nil {
		return nil, nil, fmt.Errorf("start rocketmq producer: %w", err)
	}
	log.L.Info("init producer success", zap.String("topic", cfg.ActivityTopic))

	cleanup := func() {
		if err := p.Shutdown(); err != nil {
			log.L.Warn("shutdown rocketmq producer", zap.Error(err))
		}
	}
	return &ActivityProducer{producer: p, topic: cfg.ActivityTopic}, cleanup, nil
}

func (p *ActivityProducer) Publish(ctx context.Context, event *types.ActivityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := primitive.NewMessage(p.topic, body)
	msg.WithKeys([]string{fmt.Sprintf("%d:%d", event.UserID, event.TopicID)})

	// 发送同步消息
	res, err := p.producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Debug("send activity event success", zap.String("msg_id", res.MsgID))
	return nil
}

// ActivityHandler 返回 error 时消息稍后重投
type ActivityHandler func(ctx context.Context, event *types.ActivityEvent) error

// ConsumeActivity 订阅行为事件并阻塞到 ctx 结束
func ConsumeActivity(ctx context.Context, cfg *config.RocketMQConfig, handle ActivityHandler) error {
	if !cfg.Enabled() {
		return fmt.Errorf("rocketmq activity topic not configured")
	}

	c, err := rocketmq.NewPushConsumer(
		consumer.WithNameServer(cfg.NameServer),
		consumer.WithGroupName(cfg.Consumer.Group),
		consumer.WithConsumerModel(consumer.Clustering),
	)
	if err != nil {
		return fmt.Errorf("create rocketmq consumer: %w", err)
	}

	err = c.Subscribe(cfg.ActivityTopic, consumer.MessageSelector{}, func(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
		for _, msg := range msgs {
			var event types.ActivityEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				// 无法解析的消息重投也没有意义
				log.L.Error("decode activity event failed", zap.String("msg_id", msg.MsgId), zap.Error(err))
				continue
			}
			if err := handle(ctx, &event); err != nil {
				log.L.Warn("handle activity event failed, retry later", zap.String("msg_id", msg.MsgId), zap.Error(err))
				return consumer.ConsumeRetryLater, nil
			}
		}
		return consumer.ConsumeSuccess, nil
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", cfg.ActivityTopic, err)
	}
	if err = c.Start(); err != nil {
		return fmt.Errorf("start rocketmq consumer: %w", err)
	}
	log.L.Info("activity consumer started", zap.String("topic", cfg.ActivityTopic), zap.String("group", cfg.Consumer.Group))

	<-ctx.Done()
	if err := c.Shutdown(); err != nil {
		log.L.Warn("shutdown rocketmq consumer", zap.Error(err))
	}
	return nil
}
