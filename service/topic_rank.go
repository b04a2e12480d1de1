package service

import (
	"Agora/models"
	"sort"
)

type rankKey struct {
	less   func(a, b *models.TopicStats) bool
	assign func(row *models.TopicStats, rank int)
}

var rankKeys = []rankKey{
	{
		less:   func(a, b *models.TopicStats) bool { return a.PostCount > b.PostCount },
		assign: func(row *models.TopicStats, rank int) { row.PopularityRank = &rank },
	},
	{
		less:   func(a, b *models.TopicStats) bool { return a.Posts7d > b.Posts7d },
		assign: func(row *models.TopicStats, rank int) { row.TrendingRank = &rank },
	},
	{
		less:   func(a, b *models.TopicStats) bool { return a.GrowthRate7d > b.GrowthRate7d },
		assign: func(row *models.TopicStats, rank int) { row.GrowthRank = &rank },
	},
	{
		less:   func(a, b *models.TopicStats) bool { return a.FollowerCount > b.FollowerCount },
		assign: func(row *models.TopicStats, rank int) { row.FollowerRank = &rank },
	},
}

// AssignRanks 对完整的统计集合计算四个排名并写回每一行。
// 先按话题ID升序作为基准顺序，再对每个维度稳定排序，
// 相同取值的话题保持ID升序，重复计算结果不会抖动。
// 返回按话题ID升序的切片，入参顺序不变。
func AssignRanks(rows []*models.TopicStats) []*models.TopicStats {
	base := make([]*models.TopicStats, len(rows))
	copy(base, rows)
	sort.Slice(base, func(i, j int) bool { return base[i].TopicID < base[j].TopicID })

	order := make([]*models.TopicStats, len(base))
	for _, key := range rankKeys {
		copy(order, base)
		sort.SliceStable(order, func(i, j int) bool { return key.less(order[i], order[j]) })
		for i, row := range order {
			key.assign(row, i+1)
		}
	}
	return base
}
