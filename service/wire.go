package service

import (
	"Agora/config"
	"Agora/dao"
	"Agora/dao/cache"
	"Agora/pkg/rocketmq"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Bind(new(TopicStore), new(*dao.Topic)),
	wire.Bind(new(PostStore), new(*dao.NoteTopic)),
	wire.Bind(new(FollowStore), new(*dao.TopicFollowDAO)),
	wire.Bind(new(FollowWriter), new(*dao.TopicFollowDAO)),
	wire.Bind(new(ActivityStore), new(*dao.TopicActivityDAO)),
	wire.Bind(new(StatsStore), new(*dao.TopicStatsDAO)),
	ProvideRankSnapshot,
	ProvideActivityPublisher,

	NewTopicRecommendService,
	wire.Bind(new(ITopicRecommendService), new(*TopicRecommendService)),

	NewTopicStatsAggregator,
	NewTopicStatsService,
	wire.Bind(new(ITopicStatsService), new(*TopicStatsService)),

	NewActivityService,
	wire.Bind(new(IActivityService), new(*ActivityService)),

	NewTopicFollowService,
	wire.Bind(new(ITopicFollowService), new(*TopicFollowService)),

	NewTopicPathService,
	wire.Bind(new(ITopicPathService), new(*TopicPathService)),
)

// ProvideRankSnapshot 未开启 rank_snapshot 时返回 nil，读路径直接查数据库
func ProvideRankSnapshot(cfg *config.Stats, storage *cache.TopicRankStorage) RankSnapshot {
	if !cfg.WithDefaults().RankSnapshot || storage == nil {
		return nil
	}
	return storage
}

// ProvideActivityPublisher 未配置 rocketmq 时返回 nil，行为日志同步写入
func ProvideActivityPublisher(producer *rocketmq.ActivityProducer) ActivityPublisher {
	if producer == nil {
		return nil
	}
	return producer
}
