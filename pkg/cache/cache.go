package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/limaJavier/scheduling/pkg/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = time.Hour

// Supplier builds the selections for a key on a miss, usually by running a builder
type Supplier func() ([]model.Selection, error)

type Entry struct {
	Selections []model.Selection
	CreatedAt  time.Time
}

// ScheduleCache memoizes built schedules for a fixed time window.
// Stale entries are treated as absent and replaced on the next access; nothing sweeps them proactively.
// Concurrent misses on the same key share a single build, different keys never wait on each other
type ScheduleCache struct {
	entries sync.Map // string -> Entry
	builds  singleflight.Group
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	metrics *Metrics
}

type Option func(*ScheduleCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *ScheduleCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, letting tests drive expiry
func WithClock(now func() time.Time) Option {
	return func(c *ScheduleCache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *ScheduleCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *ScheduleCache) {
		c.metrics = metrics
	}
}

func New(opts ...Option) *ScheduleCache {
	c := &ScheduleCache{
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrBuild returns the cached selections for key while they are fresh, otherwise it runs the supplier and stores its result.
// Supplier errors are returned and never cached
func (c *ScheduleCache) GetOrBuild(key string, supplier Supplier) ([]model.Selection, error) {
	if entry, ok := c.lookup(key); ok {
		c.metrics.hit()
		c.logger.Debug("schedule cache hit", zap.String("key", key))
		return slices.Clone(entry.Selections), nil
	}

	result, err, shared := c.builds.Do(key, func() (any, error) {
		// Another caller may have stored the entry between the lookup and this build
		if entry, ok := c.lookup(key); ok {
			return entry.Selections, nil
		}

		c.metrics.miss()
		buildID := uuid.NewString()
		c.logger.Debug("schedule cache miss", zap.String("key", key), zap.String("build_id", buildID))

		start := time.Now()
		selections, err := supplier()
		c.metrics.observeBuild(time.Since(start))
		if err != nil {
			c.logger.Warn("schedule build failed", zap.String("key", key), zap.String("build_id", buildID), zap.Error(err))
			return nil, err
		}

		c.entries.Store(key, Entry{Selections: selections, CreatedAt: c.now()})
		return selections, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("schedule build shared", zap.String("key", key))
	}
	return slices.Clone(result.([]model.Selection)), nil
}

// Get returns a fresh entry without building anything
func (c *ScheduleCache) Get(key string) (Entry, bool) {
	return c.lookup(key)
}

// InvalidateAll drops every entry regardless of age
func (c *ScheduleCache) InvalidateAll() {
	c.entries.Clear()
	c.logger.Debug("schedule cache invalidated")
}

// Stats counts stored entries and how many of them are still fresh
func (c *ScheduleCache) Stats() (total, valid int) {
	now := c.now()
	c.entries.Range(func(_, value any) bool {
		total++
		if c.fresh(value.(Entry), now) {
			valid++
		}
		return true
	})
	return total, valid
}

func (c *ScheduleCache) TTL() time.Duration {
	return c.ttl
}

func (c *ScheduleCache) lookup(key string) (Entry, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		return Entry{}, false
	}
	entry := value.(Entry)
	if !c.fresh(entry, c.now()) {
		return Entry{}, false
	}
	return entry, true
}

// An entry goes stale once strictly more than the TTL has elapsed since it was created
func (c *ScheduleCache) fresh(entry Entry, now time.Time) bool {
	return now.Sub(entry.CreatedAt) <= c.ttl
}
