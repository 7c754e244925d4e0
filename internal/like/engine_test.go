package like

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/lib"
)

// fakeStore is an in-memory Store with snapshot-rollback transactions.
type fakeStore struct {
	edges   map[string]bool
	counts  map[string]int64
	targets map[string]bool

	insertErr error
	deleteErr error

	// staleSelects makes SelectLikeEdge report no edge that many times,
	// emulating a read that ran before a concurrent writer committed.
	staleSelects int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		edges:   map[string]bool{},
		counts:  map[string]int64{},
		targets: map[string]bool{},
	}
}

func (s *fakeStore) addTarget(kind Kind, id uuid.UUID) {
	s.targets[targetKey(kind, id)] = true
}

func targetKey(kind Kind, targetID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", kind, targetID)
}

func edgeKey(kind Kind, targetID, userID uuid.UUID) string {
	return fmt.Sprintf("%s/%s/%s", kind, targetID, userID)
}

func (s *fakeStore) InTransaction(ctx context.Context, fn func(store Store) error) error {
	edges := make(map[string]bool, len(s.edges))
	for k, v := range s.edges {
		edges[k] = v
	}
	counts := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}

	if err := fn(s); err != nil {
		s.edges = edges
		s.counts = counts
		return err
	}
	return nil
}

func (s *fakeStore) SelectLikeEdge(kind Kind, targetID, userID uuid.UUID) error {
	if s.staleSelects > 0 {
		s.staleSelects--
		return gorm.ErrRecordNotFound
	}
	if !s.edges[edgeKey(kind, targetID, userID)] {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *fakeStore) InsertLikeEdge(kind Kind, targetID, userID uuid.UUID) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	key := edgeKey(kind, targetID, userID)
	if s.edges[key] {
		return gorm.ErrDuplicatedKey
	}
	s.edges[key] = true
	return nil
}

func (s *fakeStore) DeleteLikeEdge(kind Kind, targetID, userID uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	key := edgeKey(kind, targetID, userID)
	if !s.edges[key] {
		return gorm.ErrRecordNotFound
	}
	delete(s.edges, key)
	return nil
}

func (s *fakeStore) AdjustLikeCount(kind Kind, targetID uuid.UUID, delta int) (int64, error) {
	key := targetKey(kind, targetID)
	if !s.targets[key] {
		return 0, gorm.ErrRecordNotFound
	}
	next := s.counts[key] + int64(delta)
	if next < 0 {
		next = 0
	}
	s.counts[key] = next
	return next, nil
}

func (s *fakeStore) CountLikeEdges(kind Kind, targetID uuid.UUID) (int64, error) {
	var count int64
	for key, present := range s.edges {
		if present && len(key) > len(targetKey(kind, targetID)) && key[:len(targetKey(kind, targetID))] == targetKey(kind, targetID) {
			count++
		}
	}
	return count, nil
}

func newTestEngine(store Store) *Engine {
	return NewEngine(store, zap.NewNop(), nil)
}

func TestToggleLikeThenUnlike(t *testing.T) {
	store := newFakeStore()
	article := uuid.New()
	user := uuid.New()
	store.addTarget(KindArticle, article)

	engine := newTestEngine(store)

	result, err := engine.Toggle(context.Background(), user, article, KindArticle)
	require.NoError(t, err)
	assert.Equal(t, article, result.TargetID)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)

	result, err = engine.Toggle(context.Background(), user, article, KindArticle)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)

	edges, err := store.CountLikeEdges(KindArticle, article)
	require.NoError(t, err)
	assert.Equal(t, int64(0), edges)
}

func TestToggleTwoUsersAccumulate(t *testing.T) {
	store := newFakeStore()
	article := uuid.New()
	store.addTarget(KindArticle, article)

	engine := newTestEngine(store)

	first, err := engine.Toggle(context.Background(), uuid.New(), article, KindArticle)
	require.NoError(t, err)
	second, err := engine.Toggle(context.Background(), uuid.New(), article, KindArticle)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.LikeCount)
	assert.Equal(t, int64(2), second.LikeCount)

	edges, err := store.CountLikeEdges(KindArticle, article)
	require.NoError(t, err)
	assert.Equal(t, int64(2), edges)
}

func TestToggleUnauthenticated(t *testing.T) {
	store := newFakeStore()
	article := uuid.New()
	store.addTarget(KindArticle, article)

	engine := newTestEngine(store)

	_, err := engine.Toggle(context.Background(), uuid.Nil, article, KindArticle)
	assert.ErrorIs(t, err, lib.ErrUnauthenticated)
	edges, _ := store.CountLikeEdges(KindArticle, article)
	assert.Equal(t, int64(0), edges)
}

func TestToggleTargetNotFound(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store)

	_, err := engine.Toggle(context.Background(), uuid.New(), uuid.New(), KindArticle)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	// The edge insert must have been rolled back with the transaction.
	assert.Empty(t, store.edges)
}

func TestToggleRetriesAfterLostInsertRace(t *testing.T) {
	store := newFakeStore()
	article := uuid.New()
	user := uuid.New()
	store.addTarget(KindArticle, article)

	// A concurrent toggle committed the edge after this call's edge check:
	// the stale read misses it, the insert hits the unique constraint, and
	// the retry then observes the winner's edge.
	store.edges[edgeKey(KindArticle, article, user)] = true
	store.counts[targetKey(KindArticle, article)] = 1
	store.staleSelects = 1

	engine := newTestEngine(store)

	result, err := engine.Toggle(context.Background(), user, article, KindArticle)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)
}

func TestTogglePersistenceErrorPropagates(t *testing.T) {
	store := newFakeStore()
	article := uuid.New()
	store.addTarget(KindArticle, article)
	store.insertErr = errors.New("connection reset")

	engine := newTestEngine(store)

	_, err := engine.Toggle(context.Background(), uuid.New(), article, KindArticle)
	assert.Error(t, err)
	assert.Empty(t, store.edges)
}

func TestToggleCounterFloorsAtZero(t *testing.T) {
	store := newFakeStore()
	comment := uuid.New()
	user := uuid.New()
	store.addTarget(KindComment, comment)

	// Stored counter already desynced below the edge count.
	store.edges[edgeKey(KindComment, comment, user)] = true
	store.counts[targetKey(KindComment, comment)] = 0

	engine := newTestEngine(store)

	result, err := engine.Toggle(context.Background(), user, comment, KindComment)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)
}
