package types

// TopicInfo 话题信息
type TopicInfo struct {
	ID          uint64 `json:"id,string"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	UsageCount  uint32 `json:"usage_count"`
	FollowCount uint32 `json:"follow_count"`
}

// TopicPathResponse 从根话题到当前话题的路径
type TopicPathResponse struct {
	Path []*TopicInfo `json:"path"`
}
