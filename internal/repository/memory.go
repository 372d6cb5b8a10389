package repository

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/models"
)

const (
	resourceProfile       = "shot_profile"
	resourceContestResult = "contest_result"
)

// MemoryStore keeps profiles and contest results in a go-cache instance
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose entries expire after ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
	}
	return &MemoryStore{cache: cache.New(ttl, ttl*2)}
}

// Profiles returns a ProfileRepository view of the store
func (s *MemoryStore) Profiles() ProfileRepository {
	return &memoryProfileRepository{store: s}
}

// ContestResults returns a ContestResultRepository view of the store
func (s *MemoryStore) ContestResults() ContestResultRepository {
	return &memoryContestResultRepository{store: s}
}

// ItemCount returns the number of unexpired entries
func (s *MemoryStore) ItemCount() int {
	return s.cache.ItemCount()
}

// Flush removes every entry
func (s *MemoryStore) Flush() {
	s.cache.Flush()
}

func key(resource string, playerID int64) string {
	return fmt.Sprintf("%s:%d", resource, playerID)
}

func (s *MemoryStore) get(resource string, playerID int64) (interface{}, bool) {
	v, found := s.cache.Get(key(resource, playerID))
	if found {
		metrics.RecordCacheHit(resource)
	} else {
		metrics.RecordCacheMiss(resource)
	}
	return v, found
}

type memoryProfileRepository struct {
	store *MemoryStore
}

func (r *memoryProfileRepository) Get(_ context.Context, playerID int64) (*models.ShotProfile, error) {
	v, found := r.store.get(resourceProfile, playerID)
	if !found {
		return nil, models.ErrNotFound
	}
	profile := *v.(*models.ShotProfile)
	return &profile, nil
}

func (r *memoryProfileRepository) Put(_ context.Context, profile *models.ShotProfile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	stored := *profile
	r.store.cache.Set(key(resourceProfile, profile.PlayerID), &stored, cache.DefaultExpiration)
	return nil
}

type memoryContestResultRepository struct {
	store *MemoryStore
}

func (r *memoryContestResultRepository) Get(_ context.Context, playerID int64) (*models.ContestResult, error) {
	v, found := r.store.get(resourceContestResult, playerID)
	if !found {
		return nil, models.ErrNotFound
	}
	result := *v.(*models.ContestResult)
	return &result, nil
}

func (r *memoryContestResultRepository) Put(_ context.Context, result *models.ContestResult) error {
	if result == nil {
		return fmt.Errorf("contest result is required")
	}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("player %d: %w", result.PlayerID, err)
	}
	stored := *result
	r.store.cache.Set(key(resourceContestResult, result.PlayerID), &stored, cache.DefaultExpiration)
	return nil
}
