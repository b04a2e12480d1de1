package models

import (
	"time"
)

const (
	FollowStatusCanceled = 0
	FollowStatusActive   = 1
)

// TopicFollow 用户关注话题的关系
type TopicFollow struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_user_topic" json:"user_id"`
	TopicID   uint64    `gorm:"column:topic_id;not null;uniqueIndex:uk_user_topic;index:idx_topic_status" json:"topic_id"`
	Status    int       `gorm:"column:status;not null;index:idx_topic_status" json:"status"` // 1:关注中 0:已取消
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (TopicFollow) TableName() string {
	return "topic_follow"
}
