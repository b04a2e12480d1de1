package service

import (
	"Agora/models"
	"Agora/types"
	"context"
	"time"
)

// FollowStore 用户-话题关注关系（只读）
type FollowStore interface {
	FollowedTopicIDs(ctx context.Context, userID uint64) ([]uint64, error)
	FollowerIDs(ctx context.Context, topicID uint64) ([]uint64, error)
	FollowerCount(ctx context.Context, topicID uint64) (int64, error)
}

// FollowWriter 关注关系写入
type FollowWriter interface {
	IsFollowing(ctx context.Context, userID, topicID uint64) (bool, error)
	// SetStatus changed 为 true 时调用方才调整话题关注数
	SetStatus(ctx context.Context, userID, topicID uint64, status int) (changed bool, err error)
}

// ActivityStore 行为日志
type ActivityStore interface {
	ActivityScoresByTopic(ctx context.Context, userID uint64, since time.Time) ([]models.TopicScore, error)
	CoOccurringTopics(ctx context.Context, topicID uint64, since time.Time, limit int) ([]models.TopicCoOccurrence, error)
	Record(ctx context.Context, activity *models.TopicActivity) error
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// TopicStore 话题
type TopicStore interface {
	FindTopicByID(ctx context.Context, topicID uint64) (*models.Topic, error)
	FindTopicsByIDs(ctx context.Context, topicIDs []uint64) (map[uint64]*models.Topic, error)
	ListActiveTopicIDs(ctx context.Context) ([]uint64, error)
	IncrFollowCount(ctx context.Context, topicID uint64, delta int) error
}

// PostStore 帖子与话题的关联
type PostStore interface {
	PostCount(ctx context.Context, topicID uint64) (int64, error)
	PostCountInWindow(ctx context.Context, topicID uint64, since, until time.Time) (int64, error)
}

// StatsStore 话题统计缓存表
type StatsStore interface {
	GetByTopicID(ctx context.Context, topicID uint64) (*models.TopicStats, error)
	ListAll(ctx context.Context) ([]*models.TopicStats, error)
	TopTopicIDs(ctx context.Context, n int) ([]uint64, error)
	TopByRank(ctx context.Context, rank types.RankColumn, limit int) ([]*models.TopicStats, error)
	ReplaceAll(ctx context.Context, rows []*models.TopicStats) error
}

// RankSnapshot 排名快照（redis），ok=false 表示没有可用快照
type RankSnapshot interface {
	Publish(ctx context.Context, batchID string, rows []*models.TopicStats) error
	Top(ctx context.Context, rank types.RankColumn, limit int) ([]*models.TopicStats, bool, error)
	Get(ctx context.Context, topicID uint64) (*models.TopicStats, bool, error)
	// Invalidate 撤掉当前快照，读路径回退到数据库
	Invalidate(ctx context.Context) error
}

// ActivityPublisher 行为事件异步投递
type ActivityPublisher interface {
	Publish(ctx context.Context, event *types.ActivityEvent) error
}
