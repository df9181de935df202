package mission

import (
	"fmt"
	"log/slog"
	"math/rand"

	"homestead/internal/domain/farm"
)

const DefaultMaxActive = 3

type RewardSink interface {
	Deposit(item string, amount int)
	PlayCompletionCue(objective string)
}

type Source interface {
	Subscribe(fn farm.Observer) farm.Subscription
	Unsubscribe(sub farm.Subscription) bool
}

type Config struct {
	Pool      []Objective
	MaxActive int
	Seed      int64
	Rewards   RewardSink
	// OnCompleted runs after the reward is claimed and the objective retired.
	OnCompleted func(Objective)
	Logger      *slog.Logger
}

type Tracker struct {
	pool    []Objective
	active  []Objective
	retired []Objective

	maxActive int
	src       *countingSource
	rng       *rand.Rand
	rewards   RewardSink
	onDone    func(Objective)
	logger    *slog.Logger

	source Source
	sub    farm.Subscription
	idle   bool
}

func NewTracker(cfg Config) (*Tracker, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxActive := cfg.MaxActive
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	pool := make([]Objective, 0, len(cfg.Pool))
	for i, o := range cfg.Pool {
		if err := o.validate(); err != nil {
			return nil, err
		}
		o.ID = i + 1
		o.Current = 0
		o.Completed = false
		o.RewardClaimed = false
		pool = append(pool, o)
	}
	if cfg.Rewards == nil {
		logger.Warn("mission tracker has no reward sink; rewards are skipped")
	}

	src := newCountingSource(cfg.Seed, 0)
	t := &Tracker{
		pool:      pool,
		maxActive: maxActive,
		src:       src,
		rng:       rand.New(src), //nolint:gosec
		rewards:   cfg.Rewards,
		onDone:    cfg.OnCompleted,
		logger:    logger,
	}
	t.rng.Shuffle(len(t.pool), func(i, j int) {
		t.pool[i], t.pool[j] = t.pool[j], t.pool[i]
	})
	for len(t.active) < t.maxActive {
		if !t.draw() {
			break
		}
	}
	t.checkIdle()
	return t, nil
}

// Attach subscribes to farm notifications, replacing any previous source.
func (t *Tracker) Attach(src Source) {
	t.Detach()
	if src == nil {
		return
	}
	t.source = src
	t.sub = src.Subscribe(t.Handle)
}

// Detach must be called before the farm tracker is discarded.
func (t *Tracker) Detach() {
	if t.source == nil {
		return
	}
	t.source.Unsubscribe(t.sub)
	t.source = nil
	t.sub = farm.Subscription{}
}

func (t *Tracker) Attached() bool {
	return t.source != nil
}

func (t *Tracker) Handle(n farm.Notification) {
	kind, ok := kindFor(n.Kind)
	if !ok {
		return
	}
	var done []int
	for i := range t.active {
		o := &t.active[i]
		if o.Completed || o.Kind != kind || !o.Relevant(n.Species) {
			continue
		}
		o.Current = min(o.Current+1, o.Required)
		if o.Current >= o.Required {
			o.Completed = true
			done = append(done, o.ID)
		}
	}
	for _, id := range done {
		t.complete(id)
	}
}

func (t *Tracker) complete(id int) {
	idx := -1
	for i, o := range t.active {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	o := t.active[idx]
	if !o.RewardClaimed {
		if t.rewards != nil {
			t.rewards.Deposit(o.RewardItem, o.RewardAmount)
		}
		o.RewardClaimed = true
	}
	if t.rewards != nil {
		t.rewards.PlayCompletionCue(o.Name)
	}
	t.active = append(t.active[:idx:idx], t.active[idx+1:]...)
	t.retired = append(t.retired, o)
	t.logger.Info("objective completed", "objective", o.Name, "reward_item", o.RewardItem, "reward_amount", o.RewardAmount)

	if len(t.active) < t.maxActive {
		t.draw()
	}
	if t.onDone != nil {
		t.onDone(o)
	}
	t.checkIdle()
}

func (t *Tracker) draw() bool {
	if len(t.pool) == 0 {
		return false
	}
	i := t.rng.Intn(len(t.pool))
	o := t.pool[i]
	t.pool = append(t.pool[:i:i], t.pool[i+1:]...)
	t.active = append(t.active, o)
	t.logger.Debug("objective activated", "objective", o.Name, "remaining", len(t.pool))
	return true
}

func (t *Tracker) checkIdle() {
	if t.idle || !t.Idle() {
		return
	}
	t.idle = true
	t.logger.Info("mission pool exhausted")
}

// Idle reports that no objective is active and none are left to draw.
func (t *Tracker) Idle() bool {
	return len(t.pool) == 0 && len(t.active) == 0
}

func (t *Tracker) MaxActive() int {
	return t.maxActive
}

func (t *Tracker) Active() []Objective {
	return append([]Objective(nil), t.active...)
}

func (t *Tracker) Retired() []Objective {
	return append([]Objective(nil), t.retired...)
}

func (t *Tracker) Remaining() int {
	return len(t.pool)
}

type Snapshot struct {
	Pool    []Objective `json:"pool"`
	Active  []Objective `json:"active"`
	Retired []Objective `json:"retired"`
	Seed    int64       `json:"seed"`
	Draws   uint64      `json:"draws"`
}

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Pool:    append([]Objective(nil), t.pool...),
		Active:  t.Active(),
		Retired: t.Retired(),
		Seed:    t.src.seed,
		Draws:   t.src.draws,
	}
}

// Restore replaces objectives and the generator position; the attachment
// and reward sink are kept.
func (t *Tracker) Restore(s Snapshot) error {
	seen := make(map[int]bool, len(s.Pool)+len(s.Active)+len(s.Retired))
	for _, group := range [][]Objective{s.Pool, s.Active, s.Retired} {
		for _, o := range group {
			if err := o.validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
			}
			if o.ID == 0 || seen[o.ID] {
				return fmt.Errorf("%w: objective %q has id %d", ErrInvalidSnapshot, o.Name, o.ID)
			}
			seen[o.ID] = true
		}
	}
	if len(s.Active) > t.maxActive {
		return fmt.Errorf("%w: %d active objectives exceed the limit of %d", ErrInvalidSnapshot, len(s.Active), t.maxActive)
	}
	t.pool = append([]Objective(nil), s.Pool...)
	t.active = append([]Objective(nil), s.Active...)
	t.retired = append([]Objective(nil), s.Retired...)
	t.src = newCountingSource(s.Seed, s.Draws)
	t.rng = rand.New(t.src) //nolint:gosec
	t.idle = t.Idle()
	return nil
}
