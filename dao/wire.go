//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTopic,
	NewNoteTopic,
	NewTopicFollowDAO,
	NewTopicActivityDAO,
	NewTopicStatsDAO,
)
