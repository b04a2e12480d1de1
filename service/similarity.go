package service

import (
	"Agora/config"
	"Agora/types"
	"context"
	"fmt"
	"sort"
)

type topicSet map[uint64]struct{}

func newTopicSet(ids []uint64) topicSet {
	s := make(topicSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s topicSet) has(id uint64) bool {
	_, ok := s[id]
	return ok
}

// Jaccard |A∩B| / |A∪B|，两个集合都为空时返回 0
func Jaccard(a, b map[uint64]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for id := range small {
		if _, ok := large[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// neighbor 相似用户，附带其关注集合，协同过滤阶段直接复用
type neighbor struct {
	userID     uint64
	similarity float64
	topics     topicSet
}

// SimilarityEngine 基于关注话题集合的用户相似度
type SimilarityEngine struct {
	Config  *config.Recommend
	Follows FollowStore
}

func NewSimilarityEngine(cfg *config.Recommend, follows FollowStore) *SimilarityEngine {
	return &SimilarityEngine{Config: cfg.WithDefaults(), Follows: follows}
}

// SimilarUsers 与 userID 关注集合最相似的用户，按相似度倒序、用户ID升序
func (e *SimilarityEngine) SimilarUsers(ctx context.Context, userID uint64) ([]types.SimilarUser, error) {
	followed, err := e.Follows.FollowedTopicIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("获取关注话题失败: %w", err)
	}
	neighbors, err := e.neighbors(ctx, userID, newTopicSet(followed))
	if err != nil {
		return nil, err
	}
	out := make([]types.SimilarUser, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, types.SimilarUser{UserID: n.userID, Similarity: n.similarity})
	}
	return out, nil
}

// neighbors 候选只来自目标用户所关注话题的关注者，避免扫描全量用户
func (e *SimilarityEngine) neighbors(ctx context.Context, userID uint64, followed topicSet) ([]neighbor, error) {
	if len(followed) == 0 {
		return nil, nil
	}

	candidates := make(map[uint64]struct{})
	for topicID := range followed {
		followers, err := e.Follows.FollowerIDs(ctx, topicID)
		if err != nil {
			return nil, fmt.Errorf("获取话题 %d 关注者失败: %w", topicID, err)
		}
		for _, uid := range followers {
			if uid != userID {
				candidates[uid] = struct{}{}
			}
		}
	}

	result := make([]neighbor, 0, len(candidates))
	for uid := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids, err := e.Follows.FollowedTopicIDs(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("获取用户 %d 关注话题失败: %w", uid, err)
		}
		topics := newTopicSet(ids)
		result = append(result, neighbor{
			userID:     uid,
			similarity: Jaccard(followed, topics),
			topics:     topics,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].similarity != result[j].similarity {
			return result[i].similarity > result[j].similarity
		}
		return result[i].userID < result[j].userID
	})
	if keep := e.Config.MaxSimilarUsers; keep > 0 && len(result) > keep {
		result = result[:keep]
	}
	return result, nil
}
