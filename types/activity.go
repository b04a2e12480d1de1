package types

import (
	"fmt"
	"strings"
)

// ActivityType 用户在话题下的行为类型，取值固定
type ActivityType uint8

const (
	ActivityView ActivityType = iota + 1
	ActivityCreate
	ActivityLike
)

var activityNames = map[ActivityType]string{
	ActivityView:   "VIEW",
	ActivityCreate: "CREATE",
	ActivityLike:   "LIKE",
}

// 行为权重，记录行为日志时作为 score 写入
var activityWeights = map[ActivityType]float64{
	ActivityView:   1.0,
	ActivityCreate: 5.0,
	ActivityLike:   3.0,
}

func (a ActivityType) String() string {
	if name, ok := activityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ActivityType(%d)", uint8(a))
}

// Weight 行为对应的权重，未知类型返回 0
func (a ActivityType) Weight() float64 {
	return activityWeights[a]
}

func (a ActivityType) Valid() bool {
	_, ok := activityNames[a]
	return ok
}

// ParseActivityType 大小写不敏感
func ParseActivityType(s string) (ActivityType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range activityNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown activity type %q", s)
}

// RecordActivityRequest 上报行为，话题ID取自路径
type RecordActivityRequest struct {
	NoteID       uint64 `json:"note_id,string"`
	ActivityType string `json:"activity_type" binding:"required,oneof=VIEW CREATE LIKE view create like"`
}

// ActivityEvent 通过消息队列投递的行为事件
type ActivityEvent struct {
	UserID       uint64 `json:"user_id"`
	TopicID      uint64 `json:"topic_id"`
	NoteID       uint64 `json:"note_id"`
	ActivityType string `json:"activity_type"`
	OccurredAt   int64  `json:"occurred_at"`
}
