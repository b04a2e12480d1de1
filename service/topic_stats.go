package service

import (
	"Agora/config"
	"Agora/models"
	"Agora/pkg/log"
	"Agora/types"
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	statsRefreshDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topic_stats_refresh_duration_seconds",
			Help:    "Duration of topic stats refresh batches",
			Buckets: []float64{0.5, 1, 5, 15, 60, 300},
		},
		[]string{"mode"},
	)
	statsRefreshTopics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topic_stats_refresh_topics_total",
			Help: "Topics aggregated during stats refresh, by result",
		},
		[]string{"mode", "result"},
	)
	statsCacheMiss = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topic_stats_cache_miss_total",
			Help: "Topic stats reads that fell back to live aggregation",
		},
	)
)

func init() {
	prometheus.MustRegister(statsRefreshDuration, statsRefreshTopics, statsCacheMiss)
}

var _ ITopicStatsService = (*TopicStatsService)(nil)

type ITopicStatsService interface {
	// GetCachedStats 读取缓存，未命中时实时聚合单个话题（不含排名）
	GetCachedStats(ctx context.Context, topicID uint64) (*models.TopicStats, error)
	// RefreshAllStats 重新聚合全部话题并整体重排
	RefreshAllStats(ctx context.Context) (*types.RefreshStatsResponse, error)
	// RefreshTopStats 只重新聚合当前热度前 n 的话题，但用整个缓存集合重排
	RefreshTopStats(ctx context.Context, n int) (*types.RefreshStatsResponse, error)
	// TopTopicsByRank 按排名维度读取缓存
	TopTopicsByRank(ctx context.Context, rank types.RankColumn, limit int) ([]*models.TopicStats, error)
}

// TopicStatsService 话题统计缓存。刷新是唯一的写入方，同一时间只允许一个刷新。
type TopicStatsService struct {
	Config     *config.Stats
	Topics     TopicStore
	Stats      StatsStore
	Aggregator *TopicStatsAggregator
	// Snapshot 为 nil 时读路径直接查数据库
	Snapshot RankSnapshot

	inflight  singleflight.Group
	refreshMu sync.Mutex
	now       func() time.Time
}

func NewTopicStatsService(cfg *config.Stats, topics TopicStore, stats StatsStore, aggregator *TopicStatsAggregator, snapshot RankSnapshot) *TopicStatsService {
	return &TopicStatsService{
		Config:     cfg.WithDefaults(),
		Topics:     topics,
		Stats:      stats,
		Aggregator: aggregator,
		Snapshot:   snapshot,
		now:        time.Now,
	}
}

func (s *TopicStatsService) GetCachedStats(ctx context.Context, topicID uint64) (*models.TopicStats, error) {
	cached, err := s.cached(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	statsCacheMiss.Inc()
	// 同一个冷门话题的并发未命中只聚合一次，聚合不随首个请求取消而中断
	aggCtx := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(strconv.FormatUint(topicID, 10), func() (any, error) {
		return s.Aggregator.Aggregate(aggCtx, topicID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.TopicStats).Clone(), nil
}

func (s *TopicStatsService) cached(ctx context.Context, topicID uint64) (*models.TopicStats, error) {
	if s.Snapshot != nil {
		row, ok, err := s.Snapshot.Get(ctx, topicID)
		if err != nil {
			log.L.Warn("read topic stats snapshot failed", zap.Uint64("topic_id", topicID), zap.Error(err))
		} else if ok {
			return row, nil
		}
	}
	row, err := s.Stats.GetByTopicID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("读取话题统计缓存失败: %w", err)
	}
	return row, nil
}

func (s *TopicStatsService) RefreshAllStats(ctx context.Context) (*types.RefreshStatsResponse, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	batchID := uuid.NewString()
	start := time.Now()
	defer func() { statsRefreshDuration.WithLabelValues("all").Observe(time.Since(start).Seconds()) }()

	ids, err := s.Topics.ListActiveTopicIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取话题列表失败: %w", err)
	}

	rows, failed := s.aggregateMany(ctx, "all", batchID, ids)
	if len(ids) > 0 && len(rows) == 0 {
		return nil, fmt.Errorf("batch %s: %d topics: %w", batchID, len(ids), ErrRefreshFailed)
	}

	if err := s.replace(ctx, batchID, rows); err != nil {
		return nil, err
	}
	log.L.Info("topic stats refreshed",
		zap.String("batch_id", batchID), zap.String("mode", "all"),
		zap.Int("total", len(ids)), zap.Int("failed", failed), zap.Duration("cost", time.Since(start)))

	return &types.RefreshStatsResponse{BatchID: batchID, Refreshed: len(rows), Failed: failed, Total: len(rows)}, nil
}

// RefreshTopStats 只刷新前 n 个话题，其余话题保留旧的统计值，
// 但仍和刷新后的话题一起重新排名。
func (s *TopicStatsService) RefreshTopStats(ctx context.Context, n int) (*types.RefreshStatsResponse, error) {
	if n <= 0 {
		n = s.Config.TopN
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	batchID := uuid.NewString()
	start := time.Now()
	defer func() { statsRefreshDuration.WithLabelValues("top").Observe(time.Since(start).Seconds()) }()

	existing, err := s.Stats.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取话题统计缓存失败: %w", err)
	}
	topIDs, err := s.Stats.TopTopicIDs(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("获取热门话题失败: %w", err)
	}

	// 前 n 中已被禁用或合并的话题直接移出缓存
	topics, err := s.Topics.FindTopicsByIDs(ctx, topIDs)
	if err != nil {
		return nil, fmt.Errorf("批量查询话题失败: %w", err)
	}
	removed := make(map[uint64]struct{})
	active := make([]uint64, 0, len(topIDs))
	for _, id := range topIDs {
		if topic, ok := topics[id]; ok && topic.Active() {
			active = append(active, id)
		} else {
			removed[id] = struct{}{}
		}
	}

	fresh, failed := s.aggregateMany(ctx, "top", batchID, active)
	if len(active) > 0 && len(fresh) == 0 {
		return nil, fmt.Errorf("batch %s: %d topics: %w", batchID, len(active), ErrRefreshFailed)
	}

	byID := make(map[uint64]*models.TopicStats, len(existing))
	for _, row := range existing {
		if _, gone := removed[row.TopicID]; gone {
			continue
		}
		byID[row.TopicID] = row
	}
	for _, row := range fresh {
		byID[row.TopicID] = row
	}
	population := make([]*models.TopicStats, 0, len(byID))
	for _, row := range byID {
		population = append(population, row)
	}

	if err := s.replace(ctx, batchID, population); err != nil {
		return nil, err
	}
	log.L.Info("topic stats refreshed",
		zap.String("batch_id", batchID), zap.String("mode", "top"), zap.Int("n", n),
		zap.Int("refreshed", len(fresh)), zap.Int("failed", failed), zap.Int("population", len(population)))

	return &types.RefreshStatsResponse{BatchID: batchID, Refreshed: len(fresh), Failed: failed, Total: len(population)}, nil
}

func (s *TopicStatsService) TopTopicsByRank(ctx context.Context, rank types.RankColumn, limit int) ([]*models.TopicStats, error) {
	if !rank.Valid() {
		return nil, fmt.Errorf("%q: %w", rank, ErrInvalidRankColumn)
	}
	if limit <= 0 {
		return []*models.TopicStats{}, nil
	}
	if s.Snapshot != nil {
		rows, ok, err := s.Snapshot.Top(ctx, rank, limit)
		if err != nil {
			log.L.Warn("read topic rank snapshot failed", zap.String("rank", string(rank)), zap.Error(err))
		} else if ok {
			return rows, nil
		}
	}
	rows, err := s.Stats.TopByRank(ctx, rank, limit)
	if err != nil {
		return nil, fmt.Errorf("读取话题排名失败: %w", err)
	}
	return rows, nil
}

// aggregateMany 并发聚合，单个话题失败只记日志并跳过
func (s *TopicStatsService) aggregateMany(ctx context.Context, mode, batchID string, ids []uint64) ([]*models.TopicStats, int) {
	now := s.now()
	results := cmap.NewWithCustomShardingFunction[uint64, *models.TopicStats](shardTopicID)
	var failed atomic.Int64

	p := pool.New().WithMaxGoroutines(s.Config.RefreshConcurrency)
	for _, id := range ids {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				failed.Add(1)
				return
			}
			row, err := s.Aggregator.aggregate(ctx, id, now)
			if err != nil {
				failed.Add(1)
				statsRefreshTopics.WithLabelValues(mode, "failed").Inc()
				log.L.Error("aggregate topic stats failed",
					zap.String("batch_id", batchID), zap.Uint64("topic_id", id), zap.Error(err))
				return
			}
			statsRefreshTopics.WithLabelValues(mode, "ok").Inc()
			results.Set(id, row)
		})
	}
	p.Wait()

	rows := make([]*models.TopicStats, 0, results.Count())
	for _, row := range results.Items() {
		rows = append(rows, row)
	}
	return rows, int(failed.Load())
}

// replace 计算排名后整体替换缓存。快照写入失败不影响数据库中的结果，但会撤掉旧快照
func (s *TopicStatsService) replace(ctx context.Context, batchID string, rows []*models.TopicStats) error {
	ranked := AssignRanks(rows)
	if err := s.Stats.ReplaceAll(ctx, ranked); err != nil {
		return fmt.Errorf("写入话题统计缓存失败: %w", err)
	}
	if s.Snapshot == nil {
		return nil
	}
	if err := s.Snapshot.Publish(ctx, batchID, ranked); err != nil {
		log.L.Error("publish topic rank snapshot failed", zap.String("batch_id", batchID), zap.Error(err))
		// 旧快照已经和数据库不一致，撤掉后读路径直接查数据库
		if err := s.Snapshot.Invalidate(context.WithoutCancel(ctx)); err != nil {
			log.L.Error("invalidate topic rank snapshot failed", zap.String("batch_id", batchID), zap.Error(err))
		}
	}
	return nil
}

func shardTopicID(id uint64) uint32 {
	return uint32(id) ^ uint32(id>>32)
}
