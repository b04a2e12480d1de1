package service

import (
	"Agora/models"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollowTopic(t *testing.T) {
	follows := newMemFollows()
	topics := newMemTopics(1)
	s := NewTopicFollowService(follows, topics)
	ctx := context.Background()

	require.NoError(t, s.Follow(ctx, 7, 1))
	require.NoError(t, s.Follow(ctx, 7, 1))
	ok, err := s.IsFollowing(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), topics.topics[1].FollowCount)

	require.NoError(t, s.Unfollow(ctx, 7, 1))
	require.NoError(t, s.Unfollow(ctx, 7, 1))
	ok, err = s.IsFollowing(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint32(0), topics.topics[1].FollowCount)
}

func TestFollowInactiveTopic(t *testing.T) {
	topics := newMemTopics()
	topics.put(&models.Topic{ID: 1, Status: models.TopicStatusBanned})
	s := NewTopicFollowService(newMemFollows(), topics)

	assert.ErrorIs(t, s.Follow(context.Background(), 7, 1), ErrTopicNotFound)
	assert.ErrorIs(t, s.Follow(context.Background(), 7, 2), ErrTopicNotFound)
}

func TestUnfollowMergedTopic(t *testing.T) {
	follows := newMemFollows().follow(7, 1)
	topics := newMemTopics()
	topics.put(&models.Topic{ID: 1, Status: models.TopicStatusEnabled, MergedIntoID: 2, FollowCount: 1})
	s := NewTopicFollowService(follows, topics)

	require.NoError(t, s.Unfollow(context.Background(), 7, 1))
	ok, err := follows.IsFollowing(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowConcurrentlyCountsOnce(t *testing.T) {
	follows := newMemFollows()
	topics := newMemTopics(1)
	s := NewTopicFollowService(follows, topics)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Follow(ctx, 7, 1))
		}()
	}
	wg.Wait()
	assert.Equal(t, uint32(1), topics.topics[1].FollowCount)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Unfollow(ctx, 7, 1))
		}()
	}
	wg.Wait()
	assert.Equal(t, uint32(0), topics.topics[1].FollowCount)
}

func TestUnfollowNeverFollowed(t *testing.T) {
	follows := newMemFollows()
	topics := newMemTopics()
	topics.put(&models.Topic{ID: 1, Status: models.TopicStatusEnabled, FollowCount: 3})
	s := NewTopicFollowService(follows, topics)

	require.NoError(t, s.Unfollow(context.Background(), 7, 1))
	assert.Equal(t, uint32(3), topics.topics[1].FollowCount)
}
