package engine

import (
	"math/rand"
	"time"

	"github.com/lawnchairsociety/towerclimb/internal/equipment"
)

// DefaultBossTimeLimit is the boss-fight window in seconds.
const DefaultBossTimeLimit = 30

// bossTimeoutPenalty is how many floors the player loses when a boss
// fight times out.
const bossTimeoutPenalty = 9

// Options configures an Engine. Zero values fall back to production
// defaults.
type Options struct {
	// RNG drives every random roll. Defaults to a time-seeded *rand.Rand.
	RNG equipment.Source

	// Now supplies the clock for active skill timers and log timestamps.
	Now func() time.Time

	// BossTimeLimit is the boss window in seconds.
	BossTimeLimit int
}

// Engine advances GameState values. It holds no game state itself, only
// the randomness source, the clock and a cached aggregate.
type Engine struct {
	rng           equipment.Source
	now           func() time.Time
	bossTimeLimit int

	// Collection bonus cache, keyed by the state's inventory version.
	// Ticks run sequentially so no locking is needed.
	collectionVersion uint64
	collectionValid   bool
	collectionValue   float64
}

// New builds an engine.
func New(opts Options) *Engine {
	if opts.RNG == nil {
		opts.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BossTimeLimit <= 0 {
		opts.BossTimeLimit = DefaultBossTimeLimit
	}
	return &Engine{
		rng:           opts.RNG,
		now:           opts.Now,
		bossTimeLimit: opts.BossTimeLimit,
	}
}

func (e *Engine) nowMillis() int64 {
	return e.now().UnixMilli()
}

// collectionBonus returns the cached collection bonus for a state,
// recomputing only when the inventory version moved.
func (e *Engine) collectionBonus(s *GameState) float64 {
	if e.collectionValid && e.collectionVersion == s.InventoryVersion {
		return e.collectionValue
	}
	e.collectionValue = equipment.CollectionBonus(s.Inventory, s.Equipped)
	e.collectionVersion = s.InventoryVersion
	e.collectionValid = true
	return e.collectionValue
}
