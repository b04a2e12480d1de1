package models

import (
	"time"
)

// Note 帖子，这里只映射统计需要的列
type Note struct {
	ID        uint64    `gorm:"column:id;primary_key" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_userid_status" json:"user_id"`
	Title     string    `gorm:"column:title;type:varchar(100);not null;default:''" json:"title"`
	Status    int8      `gorm:"column:status;not null;default:0;index:idx_userid_status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (n Note) TableName() string {
	return "notes"
}
