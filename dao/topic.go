package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type Topic struct {
	Repo[models.Topic]
}

func NewTopic(db *gorm.DB) *Topic {
	return &Topic{
		Repo: NewRepo[models.Topic](db),
	}
}

// FindTopicByID - 根据ID获取话题（包含已禁用、已合并的话题），不存在返回 nil
func (d *Topic) FindTopicByID(ctx context.Context, topicID uint64) (*models.Topic, error) {
	return d.FindOne(ctx, "id = ?", topicID)
}

// FindTopicsByIDs - 批量获取话题，结果按ID索引，不存在的ID不出现在结果里
func (d *Topic) FindTopicsByIDs(ctx context.Context, topicIDs []uint64) (map[uint64]*models.Topic, error) {
	result := make(map[uint64]*models.Topic, len(topicIDs))
	if len(topicIDs) == 0 {
		return result, nil
	}
	var topics []*models.Topic
	err := d.Db.WithContext(ctx).
		Where("id IN ?", topicIDs).
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	for _, topic := range topics {
		result[topic.ID] = topic
	}
	return result, nil
}

// ListActiveTopicIDs - 所有启用且未被合并的话题ID，按ID升序
func (d *Topic) ListActiveTopicIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("status = ? AND merged_into_id = 0", models.TopicStatusEnabled).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// IncrFollowCount 关注数增减，避免负数
func (d *Topic) IncrFollowCount(ctx context.Context, topicID uint64, delta int) error {
	return d.Db.WithContext(ctx).Exec(
		"UPDATE topics SET follow_count = GREATEST(CAST(follow_count AS SIGNED) + ?, 0), updated_at = NOW() WHERE id = ?",
		delta, topicID,
	).Error
}
