package client

import (
	"Agora/config"
	"Agora/pkg/log"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(conf *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		// 排名快照是可选的，连不上只告警，读路径会退回数据库
		log.L.Warn("connect redis error", zap.Error(err))
		return client
	}
	log.L.Info("redis client success")
	return client
}
