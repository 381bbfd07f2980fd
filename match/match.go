// Package match owns everything one fight needs: the world, the store, the
// scheduler with every gameplay system installed, the stage and the fighters.
// Matches are independent; nothing is kept in package state.
package match

import (
	"fmt"
	"io"
	"sort"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/stage"
	"github.com/automoto/fightcore/systems"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/automoto/fightcore/tags"
	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

// FighterSlots is the number of fighters in a match.
const FighterSlots = 2

type Options struct {
	// Characters per slot. A single entry is used for both slots and an
	// empty list loads the default character.
	Characters []*config.Character
	// Stage defaults to stage.Default().
	Stage   *stage.Stage
	Sources []input.Source
	Logger  *log.Logger
	Strict  bool
}

type Match struct {
	opts     Options
	chars    []*config.Character
	world    donburi.World
	store    *engine.Store
	sched    *engine.Scheduler
	ctx      *systems.Context
	stage    *stage.Stage
	fighters []donburi.Entity
	logger   *log.Logger

	hitstop     int
	scale       float64
	slow        *gween.Tween
	slowElapsed int
	koed        []donburi.Entity
}

var (
	fighterQuery = query.NewQuery(filter.Contains(tags.Fighter, components.Fighter))
	hitboxQuery  = query.NewQuery(filter.Contains(tags.Hitbox, components.Hitbox))
)

// New builds a match ready for its first tick: stage built, fighters spawned
// and standing in Neutral.
func New(opts Options) (*Match, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	chars, err := characters(opts.Characters)
	if err != nil {
		return nil, err
	}
	st := opts.Stage
	if st == nil {
		st = stage.Default()
	}

	world := donburi.NewWorld()
	store := engine.NewStore(world, components.NewRegistry(), engine.Strict(opts.Strict), engine.WithLogger(logger))
	sched := engine.NewScheduler(store)
	ctx := systems.NewContext(store, logger, opts.Sources...)
	systems.Register(sched, ctx)

	m := &Match{
		opts:   opts,
		chars:  chars,
		world:  world,
		store:  store,
		sched:  sched,
		ctx:    ctx,
		stage:  st,
		logger: logger,
		scale:  1,
	}

	st.Build(store)
	for slot, char := range chars {
		sp, ok := st.Spawn(slot)
		if !ok {
			return nil, fmt.Errorf("stage %s has no spawn for slot %d", st.Name, slot)
		}
		e := factory.CreateFighter(store, slot, char, sp.X, sp.Y, st.FacingRight(sp))
		m.fighters = append(m.fighters, e.Entity())
		ctx.Apply(engine.Frame{}, action.Request{Entity: e.Entity(), Kind: action.Neutral})
	}

	systems.HitstopRequestedEvent.Subscribe(world, m.onHitstop)
	systems.KnockedOutEvent.Subscribe(world, m.onKnockedOut)

	logger.Info("match ready", "stage", st.Name, "fighters", len(m.fighters))
	return m, nil
}

func characters(in []*config.Character) ([]*config.Character, error) {
	switch len(in) {
	case 0:
		c, err := config.LoadCharacter("", "")
		if err != nil {
			return nil, err
		}
		return []*config.Character{c, c}, nil
	case 1:
		return []*config.Character{in[0], in[0]}, nil
	case FighterSlots:
		return in, nil
	}
	return nil, fmt.Errorf("match needs %d characters, got %d", FighterSlots, len(in))
}

// Tick advances the match by one frame. While hitstop is pending the frame
// runs with a zero time step: transitions still commit but nothing moves and
// no timer counts.
func (m *Match) Tick() engine.Frame {
	m.advanceSlow()
	dt := config.Frame.SecPerFrame * m.scale
	if m.hitstop > 0 {
		m.hitstop--
		dt = 0
	}
	return m.sched.Step(dt)
}

// Run ticks n times.
func (m *Match) Run(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

func (m *Match) advanceSlow() {
	if m.slow == nil {
		return
	}
	cur, done := m.slow.Update(float32(config.Frame.SecPerFrame))
	m.slowElapsed++
	m.scale = float64(cur)
	if done {
		m.slow = nil
		m.slowElapsed = 0
		m.scale = 1
	}
}

func (m *Match) startSlow() {
	m.slow = gween.New(
		float32(config.Combat.KOTimeScale),
		1,
		float32(config.Combat.KOSlowFrames)*float32(config.Frame.SecPerFrame),
		ease.Linear,
	)
	m.slowElapsed = 0
	m.scale = config.Combat.KOTimeScale
}

func (m *Match) onHitstop(_ donburi.World, ev systems.HitstopRequested) {
	if ev.Frames > m.hitstop {
		m.hitstop = ev.Frames
	}
	m.logger.Debug("hitstop", "frames", ev.Frames, "frame", ev.Frame)
}

func (m *Match) onKnockedOut(_ donburi.World, ev systems.KnockedOut) {
	m.koed = append(m.koed, ev.Entity)
	m.startSlow()
}

// Fighter returns the fighter entry of slot, or nil.
func (m *Match) Fighter(slot int) *donburi.Entry {
	if slot < 0 || slot >= len(m.fighters) || !m.store.Valid(m.fighters[slot]) {
		return nil
	}
	return m.store.Entry(m.fighters[slot])
}

// Fighters lists the fighters in slot order.
func (m *Match) Fighters() []*donburi.Entry {
	var out []*donburi.Entry
	fighterQuery.Each(m.world, func(e *donburi.Entry) {
		out = append(out, e)
	})
	sort.Slice(out, func(i, j int) bool {
		return components.Fighter.Get(out[i]).Slot < components.Fighter.Get(out[j]).Slot
	})
	return out
}

// Hitboxes lists the live hitboxes in creation order.
func (m *Match) Hitboxes() []*donburi.Entry {
	var out []*donburi.Entry
	hitboxQuery.Each(m.world, func(e *donburi.Entry) {
		out = append(out, e)
	})
	sort.Slice(out, func(i, j int) bool {
		return m.store.Sequence(out[i].Entity()) < m.store.Sequence(out[j].Entity())
	})
	return out
}

// Slot maps a fighter entity back to its slot, -1 for anything else.
func (m *Match) Slot(e donburi.Entity) int {
	for slot, f := range m.fighters {
		if f == e {
			return slot
		}
	}
	return -1
}

// Over reports whether a fighter has been knocked out.
func (m *Match) Over() bool { return len(m.koed) > 0 }

// Winner is the slot still standing once the match is over, or -1.
func (m *Match) Winner() int {
	if !m.Over() {
		return -1
	}
	for slot, f := range m.fighters {
		if components.State.Get(m.store.Entry(f)).HP > 0 {
			return slot
		}
	}
	return -1
}

func (m *Match) Frame() uint64 { return m.sched.FrameIndex() }
func (m *Match) Hitstop() int { return m.hitstop }
func (m *Match) TimeScale() float64 { return m.scale }
func (m *Match) Stage() *stage.Stage { return m.stage }
func (m *Match) Store() *engine.Store { return m.store }
func (m *Match) Scheduler() *engine.Scheduler { return m.sched }
func (m *Match) Context() *systems.Context { return m.ctx }
func (m *Match) World() donburi.World { return m.world }
func (m *Match) Logger() *log.Logger { return m.logger }
