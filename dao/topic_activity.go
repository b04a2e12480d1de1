package dao

import (
	"Agora/models"
	"context"
	"time"

	"gorm.io/gorm"
)

// 清理行为日志时每批删除的行数
const purgeBatchSize = 5000

type TopicActivityDAO struct {
	Repo[models.TopicActivity]
}

func NewTopicActivityDAO(db *gorm.DB) *TopicActivityDAO {
	return &TopicActivityDAO{
		Repo: NewRepo[models.TopicActivity](db),
	}
}

// Record 追加一条行为日志
func (d *TopicActivityDAO) Record(ctx context.Context, activity *models.TopicActivity) error {
	return d.Db.WithContext(ctx).Create(activity).Error
}

// ActivityScoresByTopic 用户在窗口期内按话题汇总的行为分
func (d *TopicActivityDAO) ActivityScoresByTopic(ctx context.Context, userID uint64, since time.Time) ([]models.TopicScore, error) {
	var scores []models.TopicScore
	err := d.Db.WithContext(ctx).
		Model(&models.TopicActivity{}).
		Select("topic_id, SUM(score) AS score").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("topic_id").
		Order("topic_id ASC").
		Scan(&scores).Error
	return scores, err
}

// CoOccurringTopics 窗口期内，与在 topicID 下有过行为的用户同样有过行为的其他话题，
// 按共同用户数倒序
func (d *TopicActivityDAO) CoOccurringTopics(ctx context.Context, topicID uint64, since time.Time, limit int) ([]models.TopicCoOccurrence, error) {
	var items []models.TopicCoOccurrence
	err := d.Db.WithContext(ctx).
		Table("topic_activity AS a").
		Select("b.topic_id AS topic_id, COUNT(DISTINCT b.user_id) AS user_count").
		Joins("INNER JOIN topic_activity AS b ON a.user_id = b.user_id").
		Where("a.topic_id = ? AND a.created_at >= ?", topicID, since).
		Where("b.topic_id <> ? AND b.created_at >= ?", topicID, since).
		Group("b.topic_id").
		Order("user_count DESC, b.topic_id ASC").
		Limit(limit).
		Scan(&items).Error
	return items, err
}

// Purge 分批删除 before 之前的行为日志，返回删除总数
func (d *TopicActivityDAO) Purge(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	for {
		res := d.Db.WithContext(ctx).Exec(
			"DELETE FROM topic_activity WHERE created_at < ? LIMIT ?",
			before, purgeBatchSize,
		)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
		if res.RowsAffected < purgeBatchSize {
			return total, nil
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}
