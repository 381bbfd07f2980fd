package match

import (
	"errors"
	"fmt"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// SnapshotVersion changes whenever the encoded layout does.
const SnapshotVersion = 1

var ErrSnapshotMismatch = errors.New("snapshot does not fit this match")

// Snapshot is the whole simulation state between two ticks. Entities are
// referred to by slot so a snapshot can be restored into a fresh match.
type Snapshot struct {
	Version     int
	Frame       uint64
	Stage       string
	Characters  []string
	Hitstop     int
	Slow        bool
	SlowElapsed int
	KnockedOut  []int
	Fighters    []FighterSnapshot
	Hitboxes    []HitboxSnapshot
}

type HitSnapshot struct {
	Damage     int
	KnockbackX float64
	KnockbackY float64
	Hitstun    int
	Blockstun  int
	Hitstop    int
	Active     int
	Knockdown  bool
	Throw      bool
	Source     int
}

type StateSnapshot struct {
	OnLeftSide      bool
	Collision       components.CollisionSide
	HitThisFrame    bool
	ThrownThisFrame bool
	HitOnLeftSide   bool
	Hit             HitSnapshot
	ComboCounter    int
	Hitting         bool
	ThrowSuccess    bool
	TriedToThrow    bool
	HP              int
	Invulnerable    bool
	ActionState     action.ActionState
	Stance          action.Stance
}

type AttackSnapshot struct {
	Attack         string
	Cursor         animation.Cursor
	Events         int
	Connected      bool
	FrameAdvantage int
}

type FighterSnapshot struct {
	Slot      int
	Markers   []string
	X, Y      float64
	ObjectX   float64
	ObjectY   float64
	Hurtbox   animation.Rect
	Rigidbody components.RigidbodyData
	State     StateSnapshot
	Action    components.ActionData
	Animator  components.AnimatorData
	Input     input.Buffer

	Timed    *components.TimedData
	Dashing  *components.DashingData
	Hittable *components.HittableData
	Grapple  *HitSnapshot
	Attack   *AttackSnapshot
	WallPush *components.WallPushData
}

type HitboxSnapshot struct {
	Owner    int
	Event    int
	Kind     animation.EventKind
	Box      animation.Rect
	Hit      HitSnapshot
	Strength action.ActionState
	Consumed bool
}

var msgpack = &codec.MsgpackHandle{}

// Encode writes the snapshot as msgpack.
func (s *Snapshot) Encode() ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, msgpack).Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := codec.NewDecoderBytes(data, msgpack).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d: %w", s.Version, SnapshotVersion, ErrSnapshotMismatch)
	}
	return &s, nil
}

// restorable are the capabilities that change at runtime and are recorded by name.
func (m *Match) restorable() engine.Signature {
	reg := m.store.Registry()
	return reg.Transient() | reg.Abilities() | reg.Mask(components.Crouching, components.Airborne, components.WallPush)
}

func (m *Match) hitSnapshot(h action.HitData) HitSnapshot {
	return HitSnapshot{
		Damage:     h.Damage,
		KnockbackX: h.Knockback.X,
		KnockbackY: h.Knockback.Y,
		Hitstun:    h.Hitstun,
		Blockstun:  h.Blockstun,
		Hitstop:    h.Hitstop,
		Active:     h.Active,
		Knockdown:  h.Knockdown,
		Throw:      h.Throw,
		Source:     m.Slot(h.Source),
	}
}

func (m *Match) hitData(h HitSnapshot) action.HitData {
	var src donburi.Entity
	if h.Source >= 0 && h.Source < len(m.fighters) {
		src = m.fighters[h.Source]
	}
	return action.HitData{
		Damage:    h.Damage,
		Knockback: dmath.Vec2{X: h.KnockbackX, Y: h.KnockbackY},
		Hitstun:   h.Hitstun,
		Blockstun: h.Blockstun,
		Hitstop:   h.Hitstop,
		Active:    h.Active,
		Knockdown: h.Knockdown,
		Throw:     h.Throw,
		Source:    src,
	}
}

// Snapshot captures the match. It must be taken between ticks.
func (m *Match) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:     SnapshotVersion,
		Frame:       m.sched.FrameIndex(),
		Stage:       m.stage.Name,
		Hitstop:     m.hitstop,
		Slow:        m.slow != nil,
		SlowElapsed: m.slowElapsed,
	}
	for _, c := range m.chars {
		snap.Characters = append(snap.Characters, c.Name)
	}
	for _, e := range m.koed {
		snap.KnockedOut = append(snap.KnockedOut, m.Slot(e))
	}

	reg := m.store.Registry()
	mask := m.restorable()
	for slot := range m.fighters {
		e := m.Fighter(slot)
		if e == nil {
			continue
		}
		id := e.Entity()
		obj := components.Object.Get(e).Object
		st := components.State.Get(e)
		fs := FighterSnapshot{
			Slot:      slot,
			Markers:   reg.Names(m.store.Signature(id) & mask),
			X:         components.Transform.Get(e).Position.X,
			Y:         components.Transform.Get(e).Position.Y,
			ObjectX:   obj.X,
			ObjectY:   obj.Y,
			Hurtbox:   components.Hurtbox.Get(e).World,
			Rigidbody: *components.Rigidbody.Get(e),
			State: StateSnapshot{
				OnLeftSide:      st.OnLeftSide,
				Collision:       st.Collision,
				HitThisFrame:    st.HitThisFrame,
				ThrownThisFrame: st.ThrownThisFrame,
				HitOnLeftSide:   st.HitOnLeftSide,
				Hit:             m.hitSnapshot(st.Hit),
				ComboCounter:    st.ComboCounter,
				Hitting:         st.Hitting,
				ThrowSuccess:    st.ThrowSuccess,
				TriedToThrow:    st.TriedToThrow,
				HP:              st.HP,
				Invulnerable:    st.Invulnerable,
				ActionState:     st.ActionState,
				Stance:          st.Stance,
			},
			Action:   *components.Action.Get(e),
			Animator: *components.Animator.Get(e),
			Input:    components.Input.Get(e).Buffer,
		}
		if v, ok := lookup(m.store, id, components.Timed); ok {
			fs.Timed = &v
		}
		if v, ok := lookup(m.store, id, components.Dashing); ok {
			fs.Dashing = &v
		}
		if v, ok := lookup(m.store, id, components.Hittable); ok {
			fs.Hittable = &v
		}
		if v, ok := lookup(m.store, id, components.WallPush); ok {
			fs.WallPush = &v
		}
		if v, ok := lookup(m.store, id, components.ReceivedGrapple); ok {
			h := m.hitSnapshot(v.Hit)
			fs.Grapple = &h
		}
		if v, ok := lookup(m.store, id, components.AttackState); ok {
			fs.Attack = &AttackSnapshot{
				Attack:         v.Attack,
				Cursor:         v.Cursor,
				Events:         len(v.Boxes),
				Connected:      v.Connected,
				FrameAdvantage: v.FrameAdvantage,
			}
		}
		snap.Fighters = append(snap.Fighters, fs)
	}

	for _, e := range m.Hitboxes() {
		hb := components.Hitbox.Get(e)
		snap.Hitboxes = append(snap.Hitboxes, HitboxSnapshot{
			Owner:    m.Slot(hb.Owner),
			Event:    hb.Event,
			Kind:     hb.Kind,
			Box:      hb.Box,
			Hit:      m.hitSnapshot(hb.Hit),
			Strength: hb.Strength,
			Consumed: hb.Consumed,
		})
	}
	return snap
}

// lookup copies an optional component without the store's mismatch policy.
func lookup[T any](s *engine.Store, e donburi.Entity, ct *donburi.ComponentType[T]) (T, bool) {
	v, err := engine.Get(s, e, ct)
	if err != nil {
		var zero T
		return zero, false
	}
	return *v, true
}

// Restore replaces the simulation state with snap. The match must have been
// built with the same stage and characters.
func (m *Match) Restore(snap *Snapshot) error {
	if err := m.fits(snap); err != nil {
		return err
	}

	for _, e := range m.Hitboxes() {
		m.store.Destroy(e.Entity())
	}
	m.ctx.Queue = action.NewQueue()

	for _, fs := range snap.Fighters {
		if err := m.restoreFighter(fs); err != nil {
			return err
		}
	}
	for i, hs := range snap.Hitboxes {
		if err := m.restoreHitbox(hs); err != nil {
			return fmt.Errorf("hitbox %d: %w", i, err)
		}
	}

	m.sched.SetFrameIndex(snap.Frame)
	m.hitstop = snap.Hitstop
	m.koed = m.koed[:0]
	for _, slot := range snap.KnockedOut {
		if slot >= 0 && slot < len(m.fighters) {
			m.koed = append(m.koed, m.fighters[slot])
		}
	}
	m.slow = nil
	m.slowElapsed = 0
	m.scale = 1
	if snap.Slow {
		m.startSlow()
		for i := 0; i < snap.SlowElapsed; i++ {
			m.advanceSlow()
		}
	}
	m.logger.Info("snapshot restored", "frame", snap.Frame)
	return nil
}

func (m *Match) fits(snap *Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d: %w", snap.Version, ErrSnapshotMismatch)
	}
	if snap.Stage != m.stage.Name {
		return fmt.Errorf("snapshot stage %s, match stage %s: %w", snap.Stage, m.stage.Name, ErrSnapshotMismatch)
	}
	if len(snap.Fighters) != len(m.fighters) || len(snap.Characters) != len(m.chars) {
		return fmt.Errorf("snapshot has %d fighters, match has %d: %w", len(snap.Fighters), len(m.fighters), ErrSnapshotMismatch)
	}
	for i, name := range snap.Characters {
		if m.chars[i].Name != name {
			return fmt.Errorf("slot %d is %s, snapshot has %s: %w", i, m.chars[i].Name, name, ErrSnapshotMismatch)
		}
	}
	return nil
}

func (m *Match) restoreFighter(fs FighterSnapshot) error {
	if m.Fighter(fs.Slot) == nil {
		return fmt.Errorf("no fighter in slot %d: %w", fs.Slot, ErrSnapshotMismatch)
	}
	id := m.fighters[fs.Slot]
	reg := m.store.Registry()

	var target engine.Signature
	for _, name := range fs.Markers {
		c, ok := reg.ByName(name)
		if !ok {
			return fmt.Errorf("slot %d: unknown component %s: %w", fs.Slot, name, ErrSnapshotMismatch)
		}
		target = target.With(c)
	}
	current := m.store.Signature(id) & m.restorable()
	m.store.Strip(id, current&^target)

	for c := engine.Capability(0); int(c) < reg.Len(); c++ {
		if !target.Has(c) || m.store.Signature(id).Has(c) {
			continue
		}
		switch ct := reg.Type(c); ct {
		case components.Timed, components.Dashing, components.Hittable, components.WallPush,
			components.ReceivedGrapple, components.AttackState:
			// valued below
		default:
			m.store.Attach(id, ct)
		}
	}
	if fs.Timed != nil {
		engine.Add(m.store, id, components.Timed, fs.Timed)
	}
	if fs.Dashing != nil {
		engine.Add(m.store, id, components.Dashing, fs.Dashing)
	}
	if fs.Hittable != nil {
		engine.Add(m.store, id, components.Hittable, fs.Hittable)
	}
	if fs.WallPush != nil {
		engine.Add(m.store, id, components.WallPush, fs.WallPush)
	}
	if fs.Grapple != nil {
		engine.Add(m.store, id, components.ReceivedGrapple, &components.ReceivedGrappleData{Hit: m.hitData(*fs.Grapple)})
	}
	if fs.Attack != nil {
		engine.Add(m.store, id, components.AttackState, &components.AttackStateData{
			Attack:         fs.Attack.Attack,
			Cursor:         fs.Attack.Cursor,
			Boxes:          make([]donburi.Entity, fs.Attack.Events),
			Connected:      fs.Attack.Connected,
			FrameAdvantage: fs.Attack.FrameAdvantage,
		})
	}

	e := m.store.Entry(id)
	components.Transform.Get(e).Position = dmath.Vec2{X: fs.X, Y: fs.Y}
	*components.Rigidbody.Get(e) = fs.Rigidbody
	*components.Action.Get(e) = fs.Action
	*components.Animator.Get(e) = fs.Animator
	components.Input.Get(e).Buffer = fs.Input
	st := components.State.Get(e)
	*st = components.StateData{
		OnLeftSide:      fs.State.OnLeftSide,
		Collision:       fs.State.Collision,
		HitThisFrame:    fs.State.HitThisFrame,
		ThrownThisFrame: fs.State.ThrownThisFrame,
		HitOnLeftSide:   fs.State.HitOnLeftSide,
		Hit:             m.hitData(fs.State.Hit),
		ComboCounter:    fs.State.ComboCounter,
		Hitting:         fs.State.Hitting,
		ThrowSuccess:    fs.State.ThrowSuccess,
		TriedToThrow:    fs.State.TriedToThrow,
		HP:              fs.State.HP,
		Invulnerable:    fs.State.Invulnerable,
		ActionState:     fs.State.ActionState,
		Stance:          fs.State.Stance,
	}

	obj := components.Object.Get(e).Object
	obj.X, obj.Y = fs.ObjectX, fs.ObjectY
	obj.Update()
	hurt := components.Hurtbox.Get(e)
	hurt.World = fs.Hurtbox
	factory.PlaceObject(hurt.Object, fs.Hurtbox)
	return nil
}

func (m *Match) restoreHitbox(hs HitboxSnapshot) error {
	owner := m.Fighter(hs.Owner)
	if owner == nil {
		return fmt.Errorf("no owner in slot %d: %w", hs.Owner, ErrSnapshotMismatch)
	}
	as, err := engine.Get(m.store, owner.Entity(), components.AttackState)
	if err != nil {
		return fmt.Errorf("owner %d: %w", hs.Owner, err)
	}
	clip, err := components.Fighter.Get(owner).Library.Get(as.Attack)
	if err != nil {
		return err
	}
	if hs.Event < 0 || hs.Event >= len(clip.Events) || hs.Event >= len(as.Boxes) {
		return fmt.Errorf("attack %s has no event %d: %w", as.Attack, hs.Event, ErrSnapshotMismatch)
	}

	box := factory.CreateHitbox(m.store, owner.Entity(), hs.Event, &clip.Events[hs.Event], hs.Box, hs.Strength)
	hb := components.Hitbox.Get(box)
	hb.Kind = hs.Kind
	hb.Hit = m.hitData(hs.Hit)
	hb.Consumed = hs.Consumed
	components.AttackState.Get(m.store.Entry(owner.Entity())).Boxes[hs.Event] = box.Entity()
	return nil
}
