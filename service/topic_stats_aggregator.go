package service

import (
	"Agora/models"
	"context"
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// TopicStatsAggregator 计算单个话题的统计，不含排名
type TopicStatsAggregator struct {
	Topics  TopicStore
	Posts   PostStore
	Follows FollowStore

	now func() time.Time
}

func NewTopicStatsAggregator(topics TopicStore, posts PostStore, follows FollowStore) *TopicStatsAggregator {
	return &TopicStatsAggregator{Topics: topics, Posts: posts, Follows: follows, now: time.Now}
}

// Aggregate 校验话题可用后计算统计，话题不存在、禁用或已合并时返回 ErrTopicNotFound
func (a *TopicStatsAggregator) Aggregate(ctx context.Context, topicID uint64) (*models.TopicStats, error) {
	topic, err := a.Topics.FindTopicByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("查询话题失败: %w", err)
	}
	if !topic.Active() {
		return nil, fmt.Errorf("topic %d: %w", topicID, ErrTopicNotFound)
	}
	return a.aggregate(ctx, topicID, a.now())
}

// aggregate 以 now 为基准计算，批量刷新时同一批次共用一个 now
func (a *TopicStatsAggregator) aggregate(ctx context.Context, topicID uint64, now time.Time) (*models.TopicStats, error) {
	postCount, err := a.Posts.PostCount(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("统计帖子总数失败: %w", err)
	}
	followerCount, err := a.Follows.FollowerCount(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("统计关注人数失败: %w", err)
	}
	posts7d, err := a.Posts.PostCountInWindow(ctx, topicID, now.Add(-7*day), now)
	if err != nil {
		return nil, fmt.Errorf("统计7天帖子数失败: %w", err)
	}
	posts30d, err := a.Posts.PostCountInWindow(ctx, topicID, now.Add(-30*day), now)
	if err != nil {
		return nil, fmt.Errorf("统计30天帖子数失败: %w", err)
	}
	// 前一个 7 天窗口：8~14 天前
	previous7d, err := a.Posts.PostCountInWindow(ctx, topicID, now.Add(-14*day), now.Add(-7*day))
	if err != nil {
		return nil, fmt.Errorf("统计上一周期帖子数失败: %w", err)
	}

	return &models.TopicStats{
		TopicID:         topicID,
		PostCount:       postCount,
		FollowerCount:   followerCount,
		Posts7d:         posts7d,
		Posts30d:        posts30d,
		GrowthRate7d:    GrowthRate(posts7d, previous7d),
		LastRefreshedAt: now,
	}, nil
}

// GrowthRate 周环比增长率（百分比）
//
//	previous == 0: recent > 0 时为 100，否则为 0
//	否则: (recent/previous - 1) * 100，四舍五入保留 4 位小数
func GrowthRate(recent, previous int64) float64 {
	if previous == 0 {
		if recent > 0 {
			return 100.0
		}
		return 0.0
	}
	return roundHalfUp((float64(recent)/float64(previous)-1)*100, 4)
}

// roundHalfUp 四舍五入，.5 远离零
func roundHalfUp(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
