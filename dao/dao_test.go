package dao

import (
	"Agora/models"
	"Agora/types"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 需要 MySQL，MYSQL_DSN 未设置时跳过。测试会清空相关表，勿指向线上库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Topic{}, &models.Note{}, &models.NoteTopic{},
		&models.TopicFollow{}, &models.TopicActivity{}, &models.TopicStats{},
	))
	for _, table := range []string{"topics", "notes", "note_topics", "topic_follow", "topic_activity", "topic_stats"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func TestTopicStatsReplaceAll(t *testing.T) {
	db := newTestDB(t)
	d := NewTopicStatsDAO(db)
	ctx := context.Background()

	rank := func(v int) *int { return &v }
	now := time.Now().Truncate(time.Second)
	first := []*models.TopicStats{
		{TopicID: 1, PostCount: 5, PopularityRank: rank(2), TrendingRank: rank(1), GrowthRank: rank(1), FollowerRank: rank(2), LastRefreshedAt: now},
		{TopicID: 2, PostCount: 9, PopularityRank: rank(1), TrendingRank: rank(2), GrowthRank: rank(2), FollowerRank: rank(1), LastRefreshedAt: now},
	}
	require.NoError(t, d.ReplaceAll(ctx, first))

	ids, err := d.TopTopicIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 1}, ids)

	rows, err := d.TopByRank(ctx, types.RankTrending, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(1), rows[0].TopicID)

	require.NoError(t, d.ReplaceAll(ctx, []*models.TopicStats{
		{TopicID: 3, PostCount: 1, PopularityRank: rank(1), TrendingRank: rank(1), GrowthRank: rank(1), FollowerRank: rank(1), LastRefreshedAt: now},
	}))
	all, err := d.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uint64(3), all[0].TopicID)

	missing, err := d.GetByTopicID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTopicFollowAndActivity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	topics := NewTopic(db)
	follows := NewTopicFollowDAO(db)
	activity := NewTopicActivityDAO(db)

	require.NoError(t, db.Create(&models.Topic{ID: 1, Name: "a", Status: models.TopicStatusEnabled}).Error)
	require.NoError(t, db.Create(&models.Topic{ID: 2, Name: "b", Status: models.TopicStatusEnabled}).Error)
	require.NoError(t, db.Create(&models.Topic{ID: 3, Name: "c", Status: models.TopicStatusEnabled, MergedIntoID: 1}).Error)

	ids, err := topics.ListActiveTopicIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, ids)

	setStatus := func(userID uint64, status int) bool {
		changed, err := follows.SetStatus(ctx, userID, 1, status)
		require.NoError(t, err)
		return changed
	}
	assert.True(t, setStatus(7, models.FollowStatusActive))
	assert.False(t, setStatus(7, models.FollowStatusActive))
	assert.True(t, setStatus(8, models.FollowStatusActive))
	assert.True(t, setStatus(8, models.FollowStatusCanceled))
	assert.False(t, setStatus(8, models.FollowStatusCanceled))
	// 从未关注过的用户取消关注
	assert.False(t, setStatus(9, models.FollowStatusCanceled))
	count, err := follows.FollowerCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, topics.IncrFollowCount(ctx, 2, -1))
	topic, err := topics.FindTopicByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), topic.FollowCount)

	now := time.Now()
	for i, a := range []models.TopicActivity{
		{UserID: 7, TopicID: 1, ActivityType: "VIEW", Score: 1, CreatedAt: now},
		{UserID: 7, TopicID: 1, ActivityType: "LIKE", Score: 3, CreatedAt: now},
		{UserID: 8, TopicID: 1, ActivityType: "VIEW", Score: 1, CreatedAt: now},
		{UserID: 8, TopicID: 2, ActivityType: "VIEW", Score: 1, CreatedAt: now},
		{UserID: 9, TopicID: 2, ActivityType: "VIEW", Score: 1, CreatedAt: now.AddDate(0, 0, -200)},
	} {
		a := a
		a.ID = uint64(i + 1)
		require.NoError(t, activity.Record(ctx, &a))
	}

	scores, err := activity.ActivityScoresByTopic(ctx, 7, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4.0, scores[0].Score)

	co, err := activity.CoOccurringTopics(ctx, 1, now.Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, co, 1)
	assert.Equal(t, models.TopicCoOccurrence{TopicID: 2, UserCount: 1}, co[0])

	n, err := activity.Purge(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
