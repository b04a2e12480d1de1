package types

// RecommendedTopic 推荐给用户的话题
type RecommendedTopic struct {
	TopicID       uint64  `json:"topic_id,string"`
	Score         float64 `json:"score"`
	Name          string  `json:"name"`
	Icon          string  `json:"icon"`
	Color         string  `json:"color"`
	UsageCount    uint32  `json:"usage_count"`
	FollowerCount int64   `json:"follower_count"`
}

// SimilarUser 相似用户及 Jaccard 相似度
type SimilarUser struct {
	UserID     uint64  `json:"user_id,string"`
	Similarity float64 `json:"similarity"`
}

// RecommendTopicsRequest 推荐接口参数
type RecommendTopicsRequest struct {
	Limit int `form:"limit"`
}

type RecommendTopicsResponse struct {
	Topics []*RecommendedTopic `json:"topics"`
	Source string              `json:"source"` // hybrid | collaborative | content
}

const (
	DefaultRecommendLimit = 10
	MaxRecommendLimit     = 50
)
