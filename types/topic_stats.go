package types

import (
	"fmt"
	"strings"
)

// RankColumn 话题排名维度
type RankColumn string

const (
	RankPopularity RankColumn = "popularity"
	RankTrending   RankColumn = "trending"
	RankGrowth     RankColumn = "growth"
	RankFollowers  RankColumn = "followers"
)

// AllRankColumns 排名维度，顺序固定
var AllRankColumns = []RankColumn{RankPopularity, RankTrending, RankGrowth, RankFollowers}

var rankColumnNames = map[RankColumn]string{
	RankPopularity: "popularity_rank",
	RankTrending:   "trending_rank",
	RankGrowth:     "growth_rank",
	RankFollowers:  "follower_rank",
}

// DBColumn topic_stats 表中对应的列名
func (r RankColumn) DBColumn() string {
	return rankColumnNames[r]
}

func (r RankColumn) Valid() bool {
	_, ok := rankColumnNames[r]
	return ok
}

func ParseRankColumn(s string) (RankColumn, error) {
	r := RankColumn(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown rank column %q", s)
	}
	return r, nil
}

// TopicStatsInfo 话题统计，排名为 nil 表示尚未参与排名
type TopicStatsInfo struct {
	TopicID         uint64  `json:"topic_id,string"`
	PostCount       int64   `json:"post_count"`
	FollowerCount   int64   `json:"follower_count"`
	Posts7d         int64   `json:"posts_7d"`
	Posts30d        int64   `json:"posts_30d"`
	GrowthRate7d    float64 `json:"growth_rate_7d"`
	PopularityRank  *int    `json:"popularity_rank"`
	TrendingRank    *int    `json:"trending_rank"`
	GrowthRank      *int    `json:"growth_rank"`
	FollowerRank    *int    `json:"follower_rank"`
	LastRefreshedAt int64   `json:"last_refreshed_at"`
}

type TopicRankListResponse struct {
	Rank   RankColumn        `json:"rank"`
	Topics []*TopicStatsInfo `json:"topics"`
}

// RefreshStatsResponse 刷新结果
type RefreshStatsResponse struct {
	BatchID   string `json:"batch_id"`
	Refreshed int    `json:"refreshed"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
}
