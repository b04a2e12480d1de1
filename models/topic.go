package models

import "time"

const (
	TopicStatusHidden  int8 = 0
	TopicStatusEnabled int8 = 1
	TopicStatusBanned  int8 = -1
)

// Topic 话题表
type Topic struct {
	// 1. 基础信息
	ID          uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string `gorm:"type:varchar(64);uniqueIndex:idx_topics_name;not null" json:"name"`
	Description string `gorm:"type:varchar(255);default:''" json:"description"`
	Icon        string `gorm:"type:varchar(255);default:''" json:"icon"`
	Color       string `gorm:"type:varchar(16);default:''" json:"color"`

	// 2. 归属与层级
	CreatorID uint64 `gorm:"index" json:"creator_id"`
	ParentID  uint64 `gorm:"index;default:0" json:"parent_id"`
	// 被合并到的话题，0 表示未合并
	MergedIntoID uint64 `gorm:"index;default:0" json:"merged_into_id"`

	// 3. 统计数据（随关注/发帖实时增减，排名类统计见 topic_stats）
	UsageCount  uint32 `gorm:"default:0" json:"usage_count"`
	FollowCount uint32 `gorm:"default:0" json:"follow_count"`

	// 4. 状态与审计
	Status int8 `gorm:"type:tinyint;default:1;index" json:"status"` // 1正常, 0隐藏, -1封禁

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Topic) TableName() string {
	return "topics"
}

// Active 未被禁用且未被合并的话题才参与推荐和统计
func (t *Topic) Active() bool {
	return t != nil && t.Status == TopicStatusEnabled && t.MergedIntoID == 0
}

// NoteTopic 笔记与话题的中间表
type NoteTopic struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// 联合唯一索引：确保 (note_id, topic_id) 组合唯一
	NoteID  uint64 `gorm:"uniqueIndex:uk_note_topic;not null" json:"note_id"`
	TopicID uint64 `gorm:"uniqueIndex:uk_note_topic;not null;index:idx_topic_id" json:"topic_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (NoteTopic) TableName() string {
	return "note_topics"
}
