package service

import (
	"Agora/config"
	"Agora/models"
	"Agora/pkg/log"
	"Agora/types"
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SourceHybrid        = "hybrid"
	SourceCollaborative = "collaborative"
	SourceContent       = "content"
)

var _ ITopicRecommendService = (*TopicRecommendService)(nil)

type ITopicRecommendService interface {
	// Recommend 混合推荐：协同过滤与基于内容的得分加权合并
	Recommend(ctx context.Context, userID uint64, limit int) ([]*types.RecommendedTopic, error)
	// RecommendCollaborative 仅使用“相似用户也关注了”信号
	RecommendCollaborative(ctx context.Context, userID uint64, limit int) ([]*types.RecommendedTopic, error)
	// RecommendContentBased 仅使用“根据你的浏览行为”信号
	RecommendContentBased(ctx context.Context, userID uint64, limit int) ([]*types.RecommendedTopic, error)
}

// TopicRecommendService 话题推荐，只读，不加锁
type TopicRecommendService struct {
	Config     *config.Recommend
	Follows    FollowStore
	Activities ActivityStore
	Topics     TopicStore
	Similarity *SimilarityEngine

	now func() time.Time
}

func NewTopicRecommendService(cfg *config.Recommend, follows FollowStore, activities ActivityStore, topics TopicStore) *TopicRecommendService {
	cfg = cfg.WithDefaults()
	return &TopicRecommendService{
		Config:     cfg,
		Follows:    follows,
		Activities: activities,
		Topics:     topics,
		Similarity: NewSimilarityEngine(cfg, follows),
		now:        time.Now,
	}
}

type scoredTopic struct {
	topicID uint64
	score   float64
}

func (s *TopicRecommendService) Recommend(ctx context.Context, userID uint64, limit int) ([]*types.RecommendedTopic, error) {
	if limit <= 0 {
		return []*types.RecommendedTopic{}, nil
	}
	followed, err := s.followedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := limit * s.Config.CandidateFactor
	var collab, content []scoredTopic

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		collab, err = s.collaborativeScores(egCtx, userID, followed, candidates)
		return err
	})
	eg.Go(func() error {
		var err error
		content, err = s.contentScores(egCtx, userID, candidates)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return s.merge(ctx, collab, content, followed, limit, s.Config.CollaborativeWeight, s.Config.ContentWeight)
}

func (s *TopicRecommendService) RecommendCollaborative(ctx context.Context, userID uint64, limit int) ([]*types.RecommendedTopic, error) {
	if limit <= 0 {
		return []*types.RecommendedTopic{}, nil
	}
	followed, err := s.followedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	collab, err := s.collaborativeScores(ctx, userID, followed, limit*s.Config.CandidateFactor)
	if err != nil {
		return nil, err
	}
	return s.merge(ctx, collab, nil, followed, limit, 1, 0)
}

func (s *TopicRecommendService) RecommendContentBased(ctx context.Context, userID uint64, limit int) ([]*types.RecommendedTopic, error) {
	if limit <= 0 {
		return []*types.RecommendedTopic{}, nil
	}
	followed, err := s.followedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	content, err := s.contentScores(ctx, userID, limit*s.Config.CandidateFactor)
	if err != nil {
		return nil, err
	}
	return s.merge(ctx, nil, content, followed, limit, 0, 1)
}

func (s *TopicRecommendService) followedSet(ctx context.Context, userID uint64) (topicSet, error) {
	ids, err := s.Follows.FollowedTopicIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("获取关注话题失败: %w", err)
	}
	return newTopicSet(ids), nil
}

// collaborativeScores score[t] += similarity，t 为相似用户关注而目标用户未关注的话题
func (s *TopicRecommendService) collaborativeScores(ctx context.Context, userID uint64, followed topicSet, candidates int) ([]scoredTopic, error) {
	neighbors, err := s.Similarity.neighbors(ctx, userID, followed)
	if err != nil {
		return nil, err
	}
	scores := make(map[uint64]float64)
	for _, n := range neighbors {
		for topicID := range n.topics {
			if followed.has(topicID) {
				continue
			}
			scores[topicID] += n.similarity
		}
	}
	return rankScores(scores, candidates), nil
}

// contentScores score[r] += 用户在 t 上的行为分 × 与 t 共现的用户数，r 不在用户已有行为的话题中
func (s *TopicRecommendService) contentScores(ctx context.Context, userID uint64, candidates int) ([]scoredTopic, error) {
	since := s.now().AddDate(0, 0, -s.Config.ActivityWindowDays)
	activities, err := s.Activities.ActivityScoresByTopic(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("获取用户行为失败: %w", err)
	}
	if len(activities) == 0 {
		return nil, nil
	}

	touched := make(topicSet, len(activities))
	for _, a := range activities {
		touched[a.TopicID] = struct{}{}
	}

	scores := make(map[uint64]float64)
	for _, a := range activities {
		related, err := s.Activities.CoOccurringTopics(ctx, a.TopicID, since, s.Config.CoOccurrenceLimit)
		if err != nil {
			return nil, fmt.Errorf("获取话题 %d 共现话题失败: %w", a.TopicID, err)
		}
		for _, r := range related {
			if touched.has(r.TopicID) {
				continue
			}
			scores[r.TopicID] += a.Score * float64(r.UserCount)
		}
	}
	return rankScores(scores, candidates), nil
}

// merge 加权合并、过滤已关注和失效话题、排序截断并补充展示信息
func (s *TopicRecommendService) merge(
	ctx context.Context,
	collab, content []scoredTopic,
	followed topicSet,
	limit int,
	collabWeight, contentWeight float64,
) ([]*types.RecommendedTopic, error) {
	combined := make(map[uint64]float64, len(collab)+len(content))
	for _, c := range collab {
		combined[c.topicID] += c.score * collabWeight
	}
	for _, c := range content {
		combined[c.topicID] += c.score * contentWeight
	}
	for topicID := range followed {
		delete(combined, topicID)
	}
	if len(combined) == 0 {
		return []*types.RecommendedTopic{}, nil
	}

	ranked := rankScores(combined, 0)
	ids := make([]uint64, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.topicID)
	}
	topics, err := s.Topics.FindTopicsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("批量查询话题失败: %w", err)
	}

	out := make([]*types.RecommendedTopic, 0, limit)
	for _, r := range ranked {
		if len(out) >= limit {
			break
		}
		topic, ok := topics[r.topicID]
		if !ok || !topic.Active() {
			continue
		}
		out = append(out, &types.RecommendedTopic{
			TopicID:    topic.ID,
			Score:      r.score,
			Name:       topic.Name,
			Icon:       topic.Icon,
			Color:      topic.Color,
			UsageCount: topic.UsageCount,
		})
	}

	s.attachFollowerCounts(ctx, out, topics)
	return out, nil
}

func (s *TopicRecommendService) attachFollowerCounts(ctx context.Context, items []*types.RecommendedTopic, topics map[uint64]*models.Topic) {
	eg, egCtx := errgroup.WithContext(ctx)
	for _, item := range items {
		eg.Go(func() error {
			count, err := s.Follows.FollowerCount(egCtx, item.TopicID)
			if err != nil {
				// 退回话题表上的冗余计数，不影响推荐结果
				log.L.Warn("get topic follower count failed",
					zap.Uint64("topic_id", item.TopicID), zap.Error(err))
				count = int64(topics[item.TopicID].FollowCount)
			}
			item.FollowerCount = count
			return nil
		})
	}
	_ = eg.Wait()
}

// rankScores 按得分倒序、话题ID升序排列，limit<=0 时不截断
func rankScores(scores map[uint64]float64, limit int) []scoredTopic {
	out := make([]scoredTopic, 0, len(scores))
	for id, score := range scores {
		out = append(out, scoredTopic{topicID: id, score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].topicID < out[j].topicID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
