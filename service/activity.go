package service

import (
	"Agora/config"
	"Agora/models"
	"Agora/pkg/log"
	"Agora/pkg/snowflake"
	"Agora/types"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var _ IActivityService = (*ActivityService)(nil)

type IActivityService interface {
	// Track 上报行为：配置了消息队列时异步投递，否则直接写入
	Track(ctx context.Context, userID, topicID, noteID uint64, activityType types.ActivityType) error
	// HandleEvent 消费消息队列中的行为事件
	HandleEvent(ctx context.Context, event *types.ActivityEvent) error
	// PurgeExpired 清理超过保留期的行为日志，不影响已生成的统计缓存
	PurgeExpired(ctx context.Context) (int64, error)
}

type ActivityService struct {
	Config     *config.Stats
	Activities ActivityStore
	Topics     TopicStore
	Publisher  ActivityPublisher

	now func() time.Time
}

func NewActivityService(cfg *config.Stats, activities ActivityStore, topics TopicStore, publisher ActivityPublisher) *ActivityService {
	return &ActivityService{
		Config:     cfg.WithDefaults(),
		Activities: activities,
		Topics:     topics,
		Publisher:  publisher,
		now:        time.Now,
	}
}

func (s *ActivityService) Track(ctx context.Context, userID, topicID, noteID uint64, activityType types.ActivityType) error {
	if !activityType.Valid() {
		return fmt.Errorf("%v: %w", activityType, ErrInvalidActivityType)
	}
	if err := s.checkTopic(ctx, topicID); err != nil {
		return err
	}
	now := s.now()
	if s.Publisher == nil {
		return s.record(ctx, userID, topicID, noteID, activityType, now)
	}

	event := &types.ActivityEvent{
		UserID:       userID,
		TopicID:      topicID,
		NoteID:       noteID,
		ActivityType: activityType.String(),
		OccurredAt:   now.UnixMilli(),
	}
	if err := s.Publisher.Publish(ctx, event); err != nil {
		// 投递失败时直接落库，行为日志不能丢
		log.L.Warn("publish activity event failed, record directly",
			zap.Uint64("user_id", userID), zap.Uint64("topic_id", topicID), zap.Error(err))
		return s.record(ctx, userID, topicID, noteID, activityType, now)
	}
	return nil
}

func (s *ActivityService) HandleEvent(ctx context.Context, event *types.ActivityEvent) error {
	activityType, err := types.ParseActivityType(event.ActivityType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidActivityType, err)
	}
	at := s.now()
	if event.OccurredAt > 0 {
		at = time.UnixMilli(event.OccurredAt)
	}
	// 投递前已经校验过话题
	return s.record(ctx, event.UserID, event.TopicID, event.NoteID, activityType, at)
}

func (s *ActivityService) PurgeExpired(ctx context.Context) (int64, error) {
	before := s.now().AddDate(0, 0, -s.Config.ActivityRetentionDays)
	n, err := s.Activities.Purge(ctx, before)
	if err != nil {
		return n, fmt.Errorf("清理行为日志失败: %w", err)
	}
	log.L.Info("topic activity purged", zap.Time("before", before), zap.Int64("rows", n))
	return n, nil
}

func (s *ActivityService) record(ctx context.Context, userID, topicID, noteID uint64, activityType types.ActivityType, at time.Time) error {
	activity := &models.TopicActivity{
		ID:           uint64(snowflake.GenID()),
		UserID:       userID,
		TopicID:      topicID,
		NoteID:       noteID,
		ActivityType: activityType.String(),
		Score:        activityType.Weight(),
		CreatedAt:    at,
	}
	if err := s.Activities.Record(ctx, activity); err != nil {
		return fmt.Errorf("写入行为日志失败: %w", err)
	}
	return nil
}

func (s *ActivityService) checkTopic(ctx context.Context, topicID uint64) error {
	topic, err := s.Topics.FindTopicByID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("查询话题失败: %w", err)
	}
	if !topic.Active() {
		return fmt.Errorf("topic %d: %w", topicID, ErrTopicNotFound)
	}
	return nil
}
