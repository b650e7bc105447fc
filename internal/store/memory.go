// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Each hangman session is an independent value keyed by its game ID, so
// concurrent players never share mutable state; the only shared resource
// is the immutable dictionary index owned by the engine.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing game IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/calegray/evil-hangman/internal/game"
)

// ErrNotFound is returned by Get for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for hangman sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete removes a session; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
