package handler

import (
	"Agora/models"
	"Agora/types"
)

func toStatsInfo(s *models.TopicStats) *types.TopicStatsInfo {
	info := &types.TopicStatsInfo{
		TopicID:        s.TopicID,
		PostCount:      s.PostCount,
		FollowerCount:  s.FollowerCount,
		Posts7d:        s.Posts7d,
		Posts30d:       s.Posts30d,
		GrowthRate7d:   s.GrowthRate7d,
		PopularityRank: s.PopularityRank,
		TrendingRank:   s.TrendingRank,
		GrowthRank:     s.GrowthRank,
		FollowerRank:   s.FollowerRank,
	}
	if !s.LastRefreshedAt.IsZero() {
		info.LastRefreshedAt = s.LastRefreshedAt.UnixMilli()
	}
	return info
}

func toTopicInfo(t *models.Topic) *types.TopicInfo {
	return &types.TopicInfo{
		ID:          t.ID,
		Name:        t.Name,
		Icon:        t.Icon,
		Color:       t.Color,
		UsageCount:  t.UsageCount,
		FollowCount: t.FollowCount,
	}
}
