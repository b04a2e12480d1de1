package models

import "time"

// TopicStats 话题统计缓存，由定时任务整表重建
// 对应表 topic_stats
type TopicStats struct {
	TopicID       uint64  `gorm:"column:topic_id;primaryKey;autoIncrement:false" json:"topic_id"`
	PostCount     int64   `gorm:"column:post_count;not null;default:0" json:"post_count"`
	FollowerCount int64   `gorm:"column:follower_count;not null;default:0" json:"follower_count"`
	Posts7d       int64   `gorm:"column:posts_7d;not null;default:0" json:"posts_7d"`
	Posts30d      int64   `gorm:"column:posts_30d;not null;default:0" json:"posts_30d"`
	GrowthRate7d  float64 `gorm:"column:growth_rate_7d;not null;default:0" json:"growth_rate_7d"`

	// 排名只在全量排序后才有意义，nil 表示未排名
	PopularityRank *int `gorm:"column:popularity_rank;index" json:"popularity_rank"`
	TrendingRank   *int `gorm:"column:trending_rank;index" json:"trending_rank"`
	GrowthRank     *int `gorm:"column:growth_rank;index" json:"growth_rank"`
	FollowerRank   *int `gorm:"column:follower_rank;index" json:"follower_rank"`

	LastRefreshedAt time.Time `gorm:"column:last_refreshed_at" json:"last_refreshed_at"`
}

func (TopicStats) TableName() string {
	return "topic_stats"
}

// Ranked 四个排名是否都已计算
func (s *TopicStats) Ranked() bool {
	return s.PopularityRank != nil && s.TrendingRank != nil && s.GrowthRank != nil && s.FollowerRank != nil
}

// Clone 深拷贝，排名指针不共享
func (s *TopicStats) Clone() *TopicStats {
	if s == nil {
		return nil
	}
	out := *s
	out.PopularityRank = cloneRank(s.PopularityRank)
	out.TrendingRank = cloneRank(s.TrendingRank)
	out.GrowthRank = cloneRank(s.GrowthRank)
	out.FollowerRank = cloneRank(s.FollowerRank)
	return &out
}

func cloneRank(r *int) *int {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
