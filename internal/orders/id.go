package orders

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	pkgredis "github.com/angelmondragon/bcf-portal/pkg/redis"
)

// IDGenerator produces candidate order ids. Candidates may collide; the
// submitter checks them against history.
type IDGenerator interface {
	Next() string
}

// RandomIDGenerator builds ids like BCF-482913 from a prefix and N random digits.
type RandomIDGenerator struct {
	prefix string
	digits int
	max    uint64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomIDGenerator returns a generator; a nil rnd seeds from the runtime.
func NewRandomIDGenerator(prefix string, digits int, rnd *rand.Rand) (*RandomIDGenerator, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("order id prefix required")
	}
	if digits < 1 || digits > 18 {
		return nil, fmt.Errorf("order id digits must be between 1 and 18, got %d", digits)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	max := uint64(1)
	for i := 0; i < digits; i++ {
		max *= 10
	}
	return &RandomIDGenerator{prefix: prefix, digits: digits, max: max, rnd: rnd}, nil
}

func (g *RandomIDGenerator) Next() string {
	g.mu.Lock()
	n := g.rnd.Uint64N(g.max)
	g.mu.Unlock()
	return fmt.Sprintf("%s-%0*d", g.prefix, g.digits, n)
}

// Reserver claims an id outside the history store so concurrent replicas do
// not hand out the same id before either append lands.
type Reserver interface {
	Reserve(ctx context.Context, id, owner string) (bool, error)
	Release(ctx context.Context, id string) error
}

type reservationStore interface {
	pkgredis.ReservationStore
	Del(ctx context.Context, keys ...string) error
}

// RedisReserver backs Reserver with SETNX keys that expire after ttl.
type RedisReserver struct {
	store reservationStore
	ttl   time.Duration
}

func NewRedisReserver(store reservationStore, ttl time.Duration) (*RedisReserver, error) {
	if store == nil {
		return nil, fmt.Errorf("reservation store required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisReserver{store: store, ttl: ttl}, nil
}

func (r *RedisReserver) Reserve(ctx context.Context, id, owner string) (bool, error) {
	return r.store.SetNX(ctx, r.store.OrderIDKey(id), owner, r.ttl)
}

func (r *RedisReserver) Release(ctx context.Context, id string) error {
	return r.store.Del(ctx, r.store.OrderIDKey(id))
}
