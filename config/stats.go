package config

// Stats 话题统计缓存参数
type Stats struct {
	// 全量刷新时并发聚合的话题数
	RefreshConcurrency int `json:"refresh_concurrency" yaml:"refresh_concurrency"`
	// refresh-top 默认刷新的话题数
	TopN int `json:"top_n" yaml:"top_n"`
	// 行为日志保留天数，超过的由 purge-activity 清理
	ActivityRetentionDays int `json:"activity_retention_days" yaml:"activity_retention_days"`
	// 是否把排名快照同步到 redis
	RankSnapshot bool `json:"rank_snapshot" yaml:"rank_snapshot"`
}

const (
	DefaultRefreshConcurrency    = 8
	DefaultTopN                  = 100
	DefaultActivityRetentionDays = 90
)

func (s *Stats) WithDefaults() *Stats {
	out := Stats{}
	if s != nil {
		out = *s
	}
	if out.RefreshConcurrency <= 0 {
		out.RefreshConcurrency = DefaultRefreshConcurrency
	}
	if out.TopN <= 0 {
		out.TopN = DefaultTopN
	}
	if out.ActivityRetentionDays <= 0 {
		out.ActivityRetentionDays = DefaultActivityRetentionDays
	}
	return &out
}
