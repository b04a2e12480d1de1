package service

import (
	"Agora/models"
	"context"
	"fmt"
)

var _ ITopicFollowService = (*TopicFollowService)(nil)

type ITopicFollowService interface {
	Follow(ctx context.Context, userID, topicID uint64) error
	Unfollow(ctx context.Context, userID, topicID uint64) error
	IsFollowing(ctx context.Context, userID, topicID uint64) (bool, error)
}

type TopicFollowService struct {
	Follows FollowWriter
	Topics  TopicStore
}

func NewTopicFollowService(follows FollowWriter, topics TopicStore) *TopicFollowService {
	return &TopicFollowService{Follows: follows, Topics: topics}
}

func (s *TopicFollowService) Follow(ctx context.Context, userID, topicID uint64) error {
	topic, err := s.Topics.FindTopicByID(ctx, topicID)
	if err != nil {
		return err
	}
	if !topic.Active() {
		return fmt.Errorf("topic %d: %w", topicID, ErrTopicNotFound)
	}

	changed, err := s.Follows.SetStatus(ctx, userID, topicID, models.FollowStatusActive)
	if err != nil {
		return err
	}
	if !changed {
		// 已经关注过，直接返回成功
		return nil
	}
	return s.Topics.IncrFollowCount(ctx, topicID, 1)
}

// Unfollow 话题被禁用或合并后仍允许取消关注
func (s *TopicFollowService) Unfollow(ctx context.Context, userID, topicID uint64) error {
	changed, err := s.Follows.SetStatus(ctx, userID, topicID, models.FollowStatusCanceled)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.Topics.IncrFollowCount(ctx, topicID, -1)
}

func (s *TopicFollowService) IsFollowing(ctx context.Context, userID, topicID uint64) (bool, error) {
	return s.Follows.IsFollowing(ctx, userID, topicID)
}
