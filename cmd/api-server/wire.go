//go:build wireinject
// +build wireinject

package main

import (
	"Agora/config"
	"Agora/dao"
	"Agora/dao/cache"
	"Agora/handler"
	"Agora/pkg/client"
	"Agora/pkg/database"
	"Agora/pkg/rocketmq"
	"Agora/pkg/server"
	"Agora/service"

	"github.com/google/wire"
)

var baseSet = wire.NewSet(
	database.NewDB,
	client.NewRedisClient,
	config.ProvideRocketMQConfig,
	config.ProvideRecommendConfig,
	config.ProvideStatsConfig,
	rocketmq.NewActivityProducer,
	cache.ProviderSet,
	dao.ProviderSet,
	service.ProviderSet,
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		baseSet,
		server.NewGinEngine,
		wire.Struct(new(handler.TopicHandler), "*"),
		wire.Struct(new(handler.Recommend), "*"),
		wire.Struct(new(handler.Admin), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil, nil
}

func InitJobs(cfg *config.Config) (*Jobs, func(), error) {
	wire.Build(
		baseSet,
		wire.Struct(new(Jobs), "*"),
	)
	return nil, nil, nil
}
