package service

import (
	"Agora/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathIDs(path []*models.Topic) []uint64 {
	ids := make([]uint64, 0, len(path))
	for _, t := range path {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestTopicPath(t *testing.T) {
	topics := newMemTopics()
	topics.put(&models.Topic{ID: 1, Status: models.TopicStatusEnabled})
	topics.put(&models.Topic{ID: 2, ParentID: 1, Status: models.TopicStatusEnabled})
	topics.put(&models.Topic{ID: 3, ParentID: 2, Status: models.TopicStatusEnabled})
	s := NewTopicPathService(topics)

	path, err := s.Path(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, pathIDs(path))

	path, err = s.Path(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, pathIDs(path))
}

func TestTopicPathStopsOnCycle(t *testing.T) {
	topics := newMemTopics()
	topics.put(&models.Topic{ID: 1, ParentID: 3, Status: models.TopicStatusEnabled})
	topics.put(&models.Topic{ID: 2, ParentID: 1, Status: models.TopicStatusEnabled})
	topics.put(&models.Topic{ID: 3, ParentID: 2, Status: models.TopicStatusEnabled})
	s := NewTopicPathService(topics)

	path, err := s.Path(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, pathIDs(path))

	topics.put(&models.Topic{ID: 4, ParentID: 4, Status: models.TopicStatusEnabled})
	path, err = s.Path(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4}, pathIDs(path))
}

func TestTopicPathDepthCap(t *testing.T) {
	topics := newMemTopics()
	for id := uint64(1); id <= 40; id++ {
		topics.put(&models.Topic{ID: id, ParentID: id - 1, Status: models.TopicStatusEnabled})
	}
	s := NewTopicPathService(topics)

	path, err := s.Path(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, path, maxTopicDepth)
	assert.Equal(t, uint64(40), path[len(path)-1].ID)
}

func TestTopicPathMissingParent(t *testing.T) {
	topics := newMemTopics()
	topics.put(&models.Topic{ID: 2, ParentID: 1, Status: models.TopicStatusEnabled})
	s := NewTopicPathService(topics)

	path, err := s.Path(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, pathIDs(path))

	_, err = s.Path(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTopicNotFound)
}
