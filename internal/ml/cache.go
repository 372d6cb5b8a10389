package ml

import (
	"fmt"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/shootout-odds/internal/models"
)

// CacheKey identifies one player's predictions for a set of locations
type CacheKey struct {
	PlayerID  int64
	Locations string
}

// NewCacheKey builds the key for a player and location list
func NewCacheKey(playerID int64, locations []models.LocationDescriptor) CacheKey {
	var b strings.Builder
	for i, loc := range locations {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%d,%d,%d", loc.X, loc.Y, loc.DistanceFeet)
	}
	return CacheKey{PlayerID: playerID, Locations: b.String()}
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%d:%s", k.PlayerID, k.Locations)
}

// PredictionCache provides in-memory caching for location predictions
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a copy of the cached probabilities
func (pc *PredictionCache) Get(key CacheKey) ([]float64, bool) {
	result, found := pc.cache.Get(key.String())

	pc.mu.Lock()
	if found {
		pc.hitCount++
	} else {
		pc.missCount++
	}
	pc.mu.Unlock()
	pc.updateMetrics()

	if !found {
		return nil, false
	}
	probs := result.([]float64)
	out := make([]float64, len(probs))
	copy(out, probs)
	return out, true
}

// Set stores a copy of the probabilities. When the cache is full, expired
// entries are evicted first and the write is dropped if no room was freed.
func (pc *PredictionCache) Set(key CacheKey, probs []float64) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.maxSize > 0 && pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return false
		}
	}

	stored := make([]float64, len(probs))
	copy(stored, probs)
	pc.cache.Set(key.String(), stored, pc.ttl)
	return true
}

// InvalidatePlayer removes every entry for a player
func (pc *PredictionCache) InvalidatePlayer(playerID int64) {
	prefix := fmt.Sprintf("%d:", playerID)
	for k := range pc.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			pc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (pc *PredictionCache) updateMetrics() {
	_, _, ratio := pc.Stats()
	LocationCacheHitRatio.Set(ratio)
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
