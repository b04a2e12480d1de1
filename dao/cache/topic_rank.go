package cache

import (
	"Agora/models"
	"Agora/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// 快照保留时间，需大于两次刷新的间隔
	rankSnapshotTTL = 24 * time.Hour
	// 旧快照在切换后保留的时间，给正在读取的请求留出余量
	rankSnapshotGrace = 5 * time.Minute
)

// TopicRankStorage 话题排名快照
//
// 每次刷新写入一组带批次号的 key：
//
//	topic:stats:{batch}          hash  topic_id -> TopicStats json
//	topic:rank:{batch}:{column}  zset  member=topic_id score=rank
//
// 写完后切换 topic:stats:current 指向新批次，读者总是读同一批次的数据。
type TopicRankStorage struct {
	redis *redis.Client
}

func NewTopicRankStorage(rds *redis.Client) *TopicRankStorage {
	return &TopicRankStorage{redis: rds}
}

// Publish 写入新快照并原子切换
func (s *TopicRankStorage) Publish(ctx context.Context, batchID string, rows []*models.TopicStats) error {
	statsKey := s.statsKey(batchID)

	_, err := s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(rows) > 0 {
			fields := make(map[string]any, len(rows))
			for _, row := range rows {
				b, err := json.Marshal(row)
				if err != nil {
					return err
				}
				fields[strconv.FormatUint(row.TopicID, 10)] = b
			}
			pipe.HSet(ctx, statsKey, fields)
		} else {
			// 空集合也要有批次标记，否则读者会回退到数据库
			pipe.HSet(ctx, statsKey, "_empty", 1)
		}
		pipe.Expire(ctx, statsKey, rankSnapshotTTL)

		for _, column := range types.AllRankColumns {
			members := make([]redis.Z, 0, len(rows))
			for _, row := range rows {
				rank := rankOf(row, column)
				if rank == nil {
					continue
				}
				members = append(members, redis.Z{Score: float64(*rank), Member: row.TopicID})
			}
			key := s.rankKey(batchID, column)
			if len(members) > 0 {
				pipe.ZAdd(ctx, key, members...)
				pipe.Expire(ctx, key, rankSnapshotTTL)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write rank snapshot: %w", err)
	}

	// 指针与批次数据同时过期，长时间没有成功刷新时读者会回退到数据库
	var swap *redis.StringCmd
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		swap = pipe.GetSet(ctx, s.currentKey(), batchID)
		pipe.Expire(ctx, s.currentKey(), rankSnapshotTTL)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("switch rank snapshot: %w", err)
	}
	prev := swap.Val()
	if prev != "" && prev != batchID {
		pipe := s.redis.Pipeline()
		pipe.Expire(ctx, s.statsKey(prev), rankSnapshotGrace)
		for _, column := range types.AllRankColumns {
			pipe.Expire(ctx, s.rankKey(prev, column), rankSnapshotGrace)
		}
		_, _ = pipe.Exec(ctx)
	}
	return nil
}

// Invalidate 撤掉当前快照，之后的读请求回退到数据库，直到下一次成功发布
func (s *TopicRankStorage) Invalidate(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.currentKey()).Err(); err != nil {
		return fmt.Errorf("invalidate rank snapshot: %w", err)
	}
	return nil
}

// Top 读取某个排名维度的前 limit 条，没有快照时 ok 为 false
func (s *TopicRankStorage) Top(ctx context.Context, column types.RankColumn, limit int) ([]*models.TopicStats, bool, error) {
	batchID, ok, err := s.current(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	ids, err := s.redis.ZRange(ctx, s.rankKey(batchID, column), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(ids) == 0 {
		return []*models.TopicStats{}, true, nil
	}
	values, err := s.redis.HMGet(ctx, s.statsKey(batchID), ids...).Result()
	if err != nil {
		return nil, false, err
	}
	rows := make([]*models.TopicStats, 0, len(values))
	for _, v := range values {
		row, err := decodeStats(v)
		if err != nil {
			return nil, false, err
		}
		if row != nil {
			rows = append(rows, row)
		}
	}
	return rows, true, nil
}

// Get 读取单个话题的快照，快照里没有该话题时 ok 为 false
func (s *TopicRankStorage) Get(ctx context.Context, topicID uint64) (*models.TopicStats, bool, error) {
	batchID, ok, err := s.current(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	v, err := s.redis.HGet(ctx, s.statsKey(batchID), strconv.FormatUint(topicID, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	row, err := decodeStats(v)
	if err != nil {
		return nil, false, err
	}
	return row, row != nil, nil
}

func (s *TopicRankStorage) current(ctx context.Context) (string, bool, error) {
	batchID, err := s.redis.Get(ctx, s.currentKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if batchID == "" {
		return "", false, nil
	}
	// 批次数据已过期或被清理时视为没有快照
	n, err := s.redis.Exists(ctx, s.statsKey(batchID)).Result()
	if err != nil {
		return "", false, err
	}
	return batchID, n > 0, nil
}

func decodeStats(v any) (*models.TopicStats, error) {
	str, ok := v.(string)
	if !ok || str == "" {
		return nil, nil
	}
	var row models.TopicStats
	if err := json.Unmarshal([]byte(str), &row); err != nil {
		return nil, fmt.Errorf("decode topic stats: %w", err)
	}
	return &row, nil
}

func rankOf(row *models.TopicStats, column types.RankColumn) *int {
	switch column {
	case types.RankPopularity:
		return row.PopularityRank
	case types.RankTrending:
		return row.TrendingRank
	case types.RankGrowth:
		return row.GrowthRank
	case types.RankFollowers:
		return row.FollowerRank
	}
	return nil
}

func (s *TopicRankStorage) currentKey() string {
	return "topic:stats:current"
}

func (s *TopicRankStorage) statsKey(batchID string) string {
	return fmt.Sprintf("topic:stats:%s", batchID)
}

func (s *TopicRankStorage) rankKey(batchID string, column types.RankColumn) string {
	return fmt.Sprintf("topic:rank:%s:%s", batchID, column)
}
