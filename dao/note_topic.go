package dao

import (
	"Agora/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type NoteTopic struct {
	Repo[models.NoteTopic]
}

func NewNoteTopic(db *gorm.DB) *NoteTopic {
	return &NoteTopic{
		Repo: NewRepo[models.NoteTopic](db),
	}
}

// PostCount 话题关联的帖子总数
func (d *NoteTopic) PostCount(ctx context.Context, topicID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.NoteTopic{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}

// PostCountInWindow 话题下在 [since, until) 内发布的帖子数
func (d *NoteTopic) PostCountInWindow(ctx context.Context, topicID uint64, since, until time.Time) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.NoteTopic{}).
		Joins("INNER JOIN notes ON notes.id = note_topics.note_id").
		Where("note_topics.topic_id = ? AND notes.created_at >= ? AND notes.created_at < ?", topicID, since, until).
		Count(&count).Error
	return count, err
}
