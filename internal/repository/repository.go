package repository

import (
	"fmt"
	"time"

	"github.com/yourusername/shootout-odds/internal/database"
)

// Repositories holds the stats cache implementations
type Repositories struct {
	Profile       ProfileRepository
	ContestResult ContestResultRepository
}

// NewRepositories returns the Postgres-backed repositories
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Profile:       NewPostgresProfileRepository(db),
		ContestResult: NewPostgresContestResultRepository(db),
	}, nil
}

// NewMemoryRepositories returns in-process repositories whose entries expire after ttl.
// A zero ttl keeps entries for the life of the process.
func NewMemoryRepositories(ttl time.Duration) *Repositories {
	store := NewMemoryStore(ttl)
	return &Repositories{
		Profile:       store.Profiles(),
		ContestResult: store.ContestResults(),
	}
}
