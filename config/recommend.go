package config

// Recommend 话题推荐参数
type Recommend struct {
	// 混合推荐时协同过滤得分的权重
	CollaborativeWeight float64 `json:"collaborative_weight" yaml:"collaborative_weight"`
	// 混合推荐时基于内容得分的权重
	ContentWeight float64 `json:"content_weight" yaml:"content_weight"`
	// 参与协同过滤的相似用户上限
	MaxSimilarUsers int `json:"max_similar_users" yaml:"max_similar_users"`
	// 每个话题最多取多少个共现话题
	CoOccurrenceLimit int `json:"co_occurrence_limit" yaml:"co_occurrence_limit"`
	// 行为回溯窗口（天）
	ActivityWindowDays int `json:"activity_window_days" yaml:"activity_window_days"`
	// 单个召回源的候选倍数，最终截断到 limit*CandidateFactor
	CandidateFactor int `json:"candidate_factor" yaml:"candidate_factor"`
}

const (
	DefaultCollaborativeWeight = 0.6
	DefaultContentWeight       = 0.4
	DefaultMaxSimilarUsers     = 50
	DefaultCoOccurrenceLimit   = 20
	DefaultActivityWindowDays  = 90
	DefaultCandidateFactor     = 2
)

// WithDefaults 返回补齐默认值后的副本，nil 时返回全部默认值
func (r *Recommend) WithDefaults() *Recommend {
	out := Recommend{}
	if r != nil {
		out = *r
	}
	// 两个权重都没配时才使用默认值，允许显式把某一路配成 0
	if out.CollaborativeWeight == 0 && out.ContentWeight == 0 {
		out.CollaborativeWeight = DefaultCollaborativeWeight
		out.ContentWeight = DefaultContentWeight
	}
	if out.MaxSimilarUsers <= 0 {
		out.MaxSimilarUsers = DefaultMaxSimilarUsers
	}
	if out.CoOccurrenceLimit <= 0 {
		out.CoOccurrenceLimit = DefaultCoOccurrenceLimit
	}
	if out.ActivityWindowDays <= 0 {
		out.ActivityWindowDays = DefaultActivityWindowDays
	}
	if out.CandidateFactor <= 0 {
		out.CandidateFactor = DefaultCandidateFactor
	}
	return &out
}
