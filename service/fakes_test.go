package service

import (
	"Agora/models"
	"Agora/types"
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var errBoom = errors.New("boom")

type memFollows struct {
	mu       sync.Mutex
	follows  map[uint64]map[uint64]bool // user -> topic -> active
	err      error
	countErr error
}

func newMemFollows() *memFollows {
	return &memFollows{follows: make(map[uint64]map[uint64]bool)}
}

func (m *memFollows) follow(userID uint64, topicIDs ...uint64) *memFollows {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.follows[userID] == nil {
		m.follows[userID] = make(map[uint64]bool)
	}
	for _, id := range topicIDs {
		m.follows[userID][id] = true
	}
	return m
}

func (m *memFollows) FollowedTopicIDs(_ context.Context, userID uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []uint64
	for id, active := range m.follows[userID] {
		if active {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *memFollows) FollowerIDs(_ context.Context, topicID uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []uint64
	for uid, topics := range m.follows {
		if topics[topicID] {
			out = append(out, uid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *memFollows) FollowerCount(ctx context.Context, topicID uint64) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	ids, err := m.FollowerIDs(ctx, topicID)
	return int64(len(ids)), err
}

func (m *memFollows) IsFollowing(_ context.Context, userID, topicID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.follows[userID][topicID], m.err
}

func (m *memFollows) SetStatus(_ context.Context, userID, topicID uint64, status int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.follows[userID] == nil {
		m.follows[userID] = make(map[uint64]bool)
	}
	active := status == models.FollowStatusActive
	changed := m.follows[userID][topicID] != active
	m.follows[userID][topicID] = active
	return changed, nil
}

type memTopics struct {
	mu     sync.Mutex
	topics map[uint64]*models.Topic
	err    error
}

func newMemTopics(ids ...uint64) *memTopics {
	m := &memTopics{topics: make(map[uint64]*models.Topic)}
	for _, id := range ids {
		m.put(&models.Topic{ID: id, Status: models.TopicStatusEnabled})
	}
	return m
}

func (m *memTopics) put(t *models.Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.Name == "" {
		t.Name = "topic"
	}
	m.topics[t.ID] = t
}

func (m *memTopics) FindTopicByID(_ context.Context, topicID uint64) (*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.topics[topicID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTopics) FindTopicsByIDs(_ context.Context, topicIDs []uint64) (map[uint64]*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uint64]*models.Topic, len(topicIDs))
	for _, id := range topicIDs {
		if t, ok := m.topics[id]; ok {
			cp := *t
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *memTopics) ListActiveTopicIDs(context.Context) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []uint64
	for id, t := range m.topics {
		if t.Active() {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *memTopics) IncrFollowCount(_ context.Context, topicID uint64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[topicID]
	if !ok {
		return nil
	}
	next := int64(t.FollowCount) + int64(delta)
	if next < 0 {
		next = 0
	}
	t.FollowCount = uint32(next)
	return nil
}

type memActivity struct {
	mu   sync.Mutex
	rows []models.TopicActivity
	err  error
}

func (m *memActivity) add(userID, topicID uint64, score float64, at time.Time) *memActivity {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, models.TopicActivity{UserID: userID, TopicID: topicID, Score: score, CreatedAt: at})
	return m
}

func (m *memActivity) Record(_ context.Context, activity *models.TopicActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, *activity)
	return nil
}

func (m *memActivity) ActivityScoresByTopic(_ context.Context, userID uint64, since time.Time) ([]models.TopicScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	sum := make(map[uint64]float64)
	for _, r := range m.rows {
		if r.UserID == userID && !r.CreatedAt.Before(since) {
			sum[r.TopicID] += r.Score
		}
	}
	out := make([]models.TopicScore, 0, len(sum))
	for id, s := range sum {
		out = append(out, models.TopicScore{TopicID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })
	return out, nil
}

func (m *memActivity) CoOccurringTopics(_ context.Context, topicID uint64, since time.Time, limit int) ([]models.TopicCoOccurrence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	users := make(map[uint64]struct{})
	for _, r := range m.rows {
		if r.TopicID == topicID && !r.CreatedAt.Before(since) {
			users[r.UserID] = struct{}{}
		}
	}
	counts := make(map[uint64]map[uint64]struct{})
	for _, r := range m.rows {
		if r.TopicID == topicID || r.CreatedAt.Before(since) {
			continue
		}
		if _, ok := users[r.UserID]; !ok {
			continue
		}
		if counts[r.TopicID] == nil {
			counts[r.TopicID] = make(map[uint64]struct{})
		}
		counts[r.TopicID][r.UserID] = struct{}{}
	}
	out := make([]models.TopicCoOccurrence, 0, len(counts))
	for id, us := range counts {
		out = append(out, models.TopicCoOccurrence{TopicID: id, UserCount: int64(len(us))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserCount != out[j].UserCount {
			return out[i].UserCount > out[j].UserCount
		}
		return out[i].TopicID < out[j].TopicID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memActivity) Purge(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	kept := m.rows[:0]
	var n int64
	for _, r := range m.rows {
		if r.CreatedAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

type memPosts struct {
	mu    sync.Mutex
	posts map[uint64][]time.Time
	fail  map[uint64]bool
	calls atomic.Int64
	// delay 用于观察并发合并
	delay time.Duration
}

func newMemPosts() *memPosts {
	return &memPosts{posts: make(map[uint64][]time.Time), fail: make(map[uint64]bool)}
}

func (m *memPosts) add(topicID uint64, at ...time.Time) *memPosts {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[topicID] = append(m.posts[topicID], at...)
	return m
}

func (m *memPosts) PostCount(_ context.Context, topicID uint64) (int64, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[topicID] {
		return 0, errBoom
	}
	return int64(len(m.posts[topicID])), nil
}

func (m *memPosts) PostCountInWindow(_ context.Context, topicID uint64, since, until time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[topicID] {
		return 0, errBoom
	}
	var n int64
	for _, at := range m.posts[topicID] {
		if !at.Before(since) && at.Before(until) {
			n++
		}
	}
	return n, nil
}

type memStats struct {
	mu         sync.Mutex
	rows       map[uint64]*models.TopicStats
	replaceErr error
	replaces   int
}

func newMemStats() *memStats {
	return &memStats{rows: make(map[uint64]*models.TopicStats)}
}

func (m *memStats) GetByTopicID(_ context.Context, topicID uint64) (*models.TopicStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[topicID].Clone(), nil
}

func (m *memStats) ListAll(context.Context) ([]*models.TopicStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.TopicStats, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })
	return out, nil
}

func (m *memStats) TopTopicIDs(ctx context.Context, n int) ([]uint64, error) {
	rows, err := m.TopByRank(ctx, types.RankPopularity, n)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.TopicID)
	}
	return ids, nil
}

func (m *memStats) TopByRank(_ context.Context, rank types.RankColumn, limit int) ([]*models.TopicStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.TopicStats
	for _, r := range m.rows {
		if rankValue(r, rank) != nil {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return *rankValue(out[i], rank) < *rankValue(out[j], rank) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStats) ReplaceAll(_ context.Context, rows []*models.TopicStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaces++
	m.rows = make(map[uint64]*models.TopicStats, len(rows))
	for _, r := range rows {
		m.rows[r.TopicID] = r.Clone()
	}
	return nil
}

func (m *memStats) snapshot() map[uint64]models.TopicStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint64]models.TopicStats, len(m.rows))
	for id, r := range m.rows {
		out[id] = *r.Clone()
	}
	return out
}

func rankValue(r *models.TopicStats, rank types.RankColumn) *int {
	switch rank {
	case types.RankPopularity:
		return r.PopularityRank
	case types.RankTrending:
		return r.TrendingRank
	case types.RankGrowth:
		return r.GrowthRank
	case types.RankFollowers:
		return r.FollowerRank
	}
	return nil
}

type memPublisher struct {
	mu     sync.Mutex
	events []*types.ActivityEvent
	err    error
}

func (m *memPublisher) Publish(_ context.Context, event *types.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
