package dao

import (
	"Agora/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicFollowDAO struct {
	Repo[models.TopicFollow]
}

func NewTopicFollowDAO(db *gorm.DB) *TopicFollowDAO {
	return &TopicFollowDAO{
		Repo: NewRepo[models.TopicFollow](db),
	}
}

// IsFollowing 检查是否已关注话题
func (d *TopicFollowDAO) IsFollowing(ctx context.Context, userID, topicID uint64) (bool, error) {
	return d.IsExist(ctx, "user_id = ? AND topic_id = ? AND status = ?", userID, topicID, models.FollowStatusActive)
}

// SetStatus 设置关注状态（如不存在则创建），changed 表示关注状态是否真的发生了变化。
// 并发设置同一状态时只有一个调用返回 changed=true。
func (d *TopicFollowDAO) SetStatus(ctx context.Context, userID, topicID uint64, status int) (changed bool, err error) {
	err = d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.TopicFollow{}).
			Where("user_id = ? AND topic_id = ? AND status <> ?", userID, topicID, status).
			Updates(map[string]any{"status": status, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			changed = true
			return nil
		}

		// 没有可更新的行：要么已是目标状态，要么还没有记录。uk_user_topic 冲突时什么都不做
		follow := models.TopicFollow{
			UserID:    userID,
			TopicID:   topicID,
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		}
		res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
		if res.Error != nil {
			return res.Error
		}
		// 新建一条已取消的记录不算状态变化
		changed = res.RowsAffected > 0 && status == models.FollowStatusActive
		return nil
	})
	return changed, err
}

// FollowedTopicIDs 用户关注的全部话题
func (d *TopicFollowDAO) FollowedTopicIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.TopicFollow{}).
		Where("user_id = ? AND status = ?", userID, models.FollowStatusActive).
		Order("topic_id ASC").
		Pluck("topic_id", &ids).Error
	return ids, err
}

// FollowerIDs 关注该话题的全部用户
func (d *TopicFollowDAO) FollowerIDs(ctx context.Context, topicID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.TopicFollow{}).
		Where("topic_id = ? AND status = ?", topicID, models.FollowStatusActive).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// FollowerCount 话题的关注人数
func (d *TopicFollowDAO) FollowerCount(ctx context.Context, topicID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.TopicFollow{}).
		Where("topic_id = ? AND status = ?", topicID, models.FollowStatusActive).
		Count(&count).Error
	return count, err
}
