package service

import (
	"Agora/models"
	"Agora/pkg/log"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// 话题层级的最大深度，超过即视为数据异常
const maxTopicDepth = 16

var _ ITopicPathService = (*TopicPathService)(nil)

type ITopicPathService interface {
	// Path 从根话题到 topicID 的路径
	Path(ctx context.Context, topicID uint64) ([]*models.Topic, error)
}

type TopicPathService struct {
	Topics TopicStore
}

func NewTopicPathService(topics TopicStore) *TopicPathService {
	return &TopicPathService{Topics: topics}
}

// Path 沿 parent_id 向上迭代，遇到环、缺失的父话题或超过最大深度时在该处截断
func (s *TopicPathService) Path(ctx context.Context, topicID uint64) ([]*models.Topic, error) {
	topic, err := s.Topics.FindTopicByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, fmt.Errorf("topic %d: %w", topicID, ErrTopicNotFound)
	}

	reversed := []*models.Topic{topic}
	visited := map[uint64]struct{}{topic.ID: {}}
	for cur := topic; cur.ParentID != 0; {
		if len(reversed) >= maxTopicDepth {
			log.L.Warn("topic path exceeds max depth", zap.Uint64("topic_id", topicID), zap.Int("depth", maxTopicDepth))
			break
		}
		if _, seen := visited[cur.ParentID]; seen {
			log.L.Warn("topic path has cycle", zap.Uint64("topic_id", topicID), zap.Uint64("parent_id", cur.ParentID))
			break
		}
		parent, err := s.Topics.FindTopicByID(ctx, cur.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		visited[parent.ID] = struct{}{}
		reversed = append(reversed, parent)
		cur = parent
	}

	path := make([]*models.Topic, len(reversed))
	for i, t := range reversed {
		path[len(reversed)-1-i] = t
	}
	return path, nil
}
