package models

import "time"

// TopicActivity 用户在话题下的行为日志，只追加不修改
type TopicActivity struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID       uint64    `gorm:"column:user_id;not null;index:idx_user_created" json:"user_id"`
	TopicID      uint64    `gorm:"column:topic_id;not null;index:idx_topic_created" json:"topic_id"`
	NoteID       uint64    `gorm:"column:note_id;not null;default:0" json:"note_id"`
	ActivityType string    `gorm:"column:activity_type;type:varchar(16);not null" json:"activity_type"`
	Score        float64   `gorm:"column:score;not null;default:0" json:"score"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_user_created;index:idx_topic_created;index:idx_created_at" json:"created_at"`
}

func (TopicActivity) TableName() string {
	return "topic_activity"
}

// TopicScore 按话题聚合后的行为分
type TopicScore struct {
	TopicID uint64  `gorm:"column:topic_id" json:"topic_id"`
	Score   float64 `gorm:"column:score" json:"score"`
}

// TopicCoOccurrence 与某话题共现的话题及共同参与的用户数
type TopicCoOccurrence struct {
	TopicID   uint64 `gorm:"column:topic_id" json:"topic_id"`
	UserCount int64  `gorm:"column:user_count" json:"user_count"`
}
