package service

import (
	"Agora/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsRows() []*models.TopicStats {
	return []*models.TopicStats{
		{TopicID: 5, PostCount: 10, Posts7d: 1, GrowthRate7d: 0, FollowerCount: 3},
		{TopicID: 2, PostCount: 30, Posts7d: 1, GrowthRate7d: 50, FollowerCount: 3},
		{TopicID: 9, PostCount: 30, Posts7d: 4, GrowthRate7d: -10, FollowerCount: 0},
		{TopicID: 1, PostCount: 0, Posts7d: 0, GrowthRate7d: 100, FollowerCount: 8},
		{TopicID: 7, PostCount: 10, Posts7d: 1, GrowthRate7d: 50, FollowerCount: 3},
	}
}

func ranksOf(rows []*models.TopicStats) map[uint64][4]int {
	out := make(map[uint64][4]int, len(rows))
	for _, r := range rows {
		out[r.TopicID] = [4]int{*r.PopularityRank, *r.TrendingRank, *r.GrowthRank, *r.FollowerRank}
	}
	return out
}

func TestAssignRanksIsBijection(t *testing.T) {
	ranked := AssignRanks(statsRows())
	require.Len(t, ranked, 5)

	for col := 0; col < 4; col++ {
		seen := make(map[int]bool)
		for _, r := range ranksOf(ranked) {
			seen[r[col]] = true
		}
		for i := 1; i <= len(ranked); i++ {
			assert.True(t, seen[i], "column %d missing rank %d", col, i)
		}
	}
}

func TestAssignRanksTiesByTopicID(t *testing.T) {
	ranks := ranksOf(AssignRanks(statsRows()))

	// 帖子数：2(30) 9(30) 5(10) 7(10) 1(0)
	assert.Equal(t, 1, ranks[2][0])
	assert.Equal(t, 2, ranks[9][0])
	assert.Equal(t, 3, ranks[5][0])
	assert.Equal(t, 4, ranks[7][0])
	assert.Equal(t, 5, ranks[1][0])
	// 7天帖子数：9(4) 2(1) 5(1) 7(1) 1(0)
	assert.Equal(t, 1, ranks[9][1])
	assert.Equal(t, 2, ranks[2][1])
	assert.Equal(t, 5, ranks[1][1])
	// 增长率：1(100) 2(50) 7(50) 5(0) 9(-10)
	assert.Equal(t, [5]int{1, 2, 3, 4, 5}, [5]int{ranks[1][2], ranks[2][2], ranks[7][2], ranks[5][2], ranks[9][2]})
	// 关注数：1(8) 2(3) 5(3) 7(3) 9(0)
	assert.Equal(t, [5]int{1, 2, 3, 4, 5}, [5]int{ranks[1][3], ranks[2][3], ranks[5][3], ranks[7][3], ranks[9][3]})
}

func TestAssignRanksIgnoresInputOrder(t *testing.T) {
	a := AssignRanks(statsRows())
	rows := statsRows()
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	b := AssignRanks(rows)

	assert.Equal(t, ranksOf(a), ranksOf(b))
	for i := 1; i < len(b); i++ {
		assert.Less(t, b[i-1].TopicID, b[i].TopicID)
	}
}

func TestAssignRanksEmpty(t *testing.T) {
	assert.Empty(t, AssignRanks(nil))
}
