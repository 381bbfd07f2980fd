package engine

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"github.com/yohamta/donburi"
)

// SignatureListener observes every signature change. removed is true when the
// entity was destroyed.
type SignatureListener func(e donburi.Entity, sig Signature, removed bool)

// Store owns every component instance through a donburi world and keeps the
// capability signature of each entity in step with it.
type Store struct {
	world     donburi.World
	registry  *Registry
	sigs      *intmap.Map[donburi.Entity, Signature]
	seqs      *intmap.Map[donburi.Entity, uint64]
	nextSeq   uint64
	order     []donburi.Entity
	listeners []SignatureListener
	strict    bool
	logger    *log.Logger
}

type StoreOption func(*Store)

// Strict makes signature mismatches panic instead of degrading to a no-op.
func Strict(strict bool) StoreOption {
	return func(s *Store) { s.strict = strict }
}

func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

func NewStore(world donburi.World, registry *Registry, opts ...StoreOption) *Store {
	s := &Store{
		world:    world,
		registry: registry,
		sigs:     intmap.New[donburi.Entity, Signature](64),
		seqs:     intmap.New[donburi.Entity, uint64](64),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) World() donburi.World { return s.world }

func (s *Store) Registry() *Registry { return s.registry }

func (s *Store) Logger() *log.Logger { return s.logger }

func (s *Store) IsStrict() bool { return s.strict }

func (s *Store) Listen(l SignatureListener) {
	s.listeners = append(s.listeners, l)
}

// Create spawns an entity carrying the given component types with zero values.
func (s *Store) Create(cts ...donburi.IComponentType) donburi.Entity {
	e := s.world.Create(cts...)
	s.nextSeq++
	s.seqs.Put(e, s.nextSeq)
	s.order = append(s.order, e)

	sig := s.registry.Mask(cts...)
	s.sigs.Put(e, sig)

	entry := s.world.Entry(e)
	for c := Capability(0); int(c) < s.registry.Len(); c++ {
		if sig.Has(c) {
			if h := s.registry.info(c).onAdd; h != nil {
				h(s, entry)
			}
		}
	}
	s.notify(e, sig, false)
	return e
}

// Destroy removes the entity and every component it owns. OnRemove hooks run first.
func (s *Store) Destroy(e donburi.Entity) {
	if !s.Valid(e) {
		return
	}
	sig, _ := s.sigs.Get(e)
	entry := s.world.Entry(e)
	for c := Capability(0); int(c) < s.registry.Len(); c++ {
		if sig.Has(c) {
			if h := s.registry.info(c).onRemove; h != nil {
				h(s, entry)
			}
		}
	}
	s.world.Remove(e)
	s.sigs.Del(e)
	s.seqs.Del(e)
	for i, other := range s.order {
		if other == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.notify(e, 0, true)
}

func (s *Store) Valid(e donburi.Entity) bool {
	if _, ok := s.sigs.Get(e); !ok {
		return false
	}
	return s.world.Valid(e)
}

func (s *Store) Entry(e donburi.Entity) *donburi.Entry {
	return s.world.Entry(e)
}

func (s *Store) Signature(e donburi.Entity) Signature {
	sig, _ := s.sigs.Get(e)
	return sig
}

// Sequence is the creation order of e; lower sequences were created earlier.
func (s *Store) Sequence(e donburi.Entity) uint64 {
	seq, _ := s.seqs.Get(e)
	return seq
}

func (s *Store) Len() int { return s.sigs.Len() }

// Entities lists live entities in creation order.
func (s *Store) Entities() []donburi.Entity {
	return append([]donburi.Entity(nil), s.order...)
}

func (s *Store) Has(e donburi.Entity, ct donburi.IComponentType) bool {
	c, ok := s.registry.Lookup(ct)
	if !ok {
		return false
	}
	return s.Signature(e).Has(c)
}

// Strip detaches every component whose capability is in mask and returns what was removed.
func (s *Store) Strip(e donburi.Entity, mask Signature) Signature {
	if !s.Valid(e) {
		return 0
	}
	sig := s.Signature(e)
	removed := sig & mask
	if removed == 0 {
		return 0
	}
	entry := s.world.Entry(e)
	for c := Capability(0); int(c) < s.registry.Len(); c++ {
		if !removed.Has(c) {
			continue
		}
		if h := s.registry.info(c).onRemove; h != nil {
			h(s, entry)
		}
		entry.RemoveComponent(s.registry.componentType(c))
	}
	sig &^= removed
	s.sigs.Put(e, sig)
	s.notify(e, sig, false)
	return removed
}

// Attach adds a zero-valued component, typically a marker. It is a no-op when present.
func (s *Store) Attach(e donburi.Entity, ct donburi.IComponentType) {
	if !s.Valid(e) {
		return
	}
	c := s.registry.Capability(ct)
	sig := s.Signature(e)
	if sig.Has(c) {
		return
	}
	entry := s.world.Entry(e)
	entry.AddComponent(ct)
	sig = sig.With(c)
	s.sigs.Put(e, sig)
	if h := s.registry.info(c).onAdd; h != nil {
		h(s, entry)
	}
	s.notify(e, sig, false)
}

// Detach removes a component if present.
func (s *Store) Detach(e donburi.Entity, ct donburi.IComponentType) {
	c, ok := s.registry.Lookup(ct)
	if !ok {
		return
	}
	s.Strip(e, Signature(0).With(c))
}

func (s *Store) notify(e donburi.Entity, sig Signature, removed bool) {
	for _, l := range s.listeners {
		l(e, sig, removed)
	}
}

// mismatch applies the MissingComponent policy: panic when strict, warn and skip otherwise.
func (s *Store) mismatch(err *MissingComponentError) {
	if s.strict {
		panic(err)
	}
	s.logger.Warn("signature mismatch, skipping", "entity", err.Entity, "component", err.Component, "system", err.System)
}

// Add attaches ct with value v, overwriting the value when the component is already present.
func Add[T any](s *Store, e donburi.Entity, ct *donburi.ComponentType[T], v *T) {
	if !s.Valid(e) {
		return
	}
	c := s.registry.Capability(ct)
	sig := s.Signature(e)
	entry := s.world.Entry(e)
	if sig.Has(c) {
		ct.Set(entry, v)
		return
	}
	entry.AddComponent(ct)
	ct.Set(entry, v)
	sig = sig.With(c)
	s.sigs.Put(e, sig)
	if h := s.registry.info(c).onAdd; h != nil {
		h(s, entry)
	}
	s.notify(e, sig, false)
}

func Remove[T any](s *Store, e donburi.Entity, ct *donburi.ComponentType[T]) {
	s.Detach(e, ct)
}

// Get returns the component or an error wrapping ErrMissingComponent.
func Get[T any](s *Store, e donburi.Entity, ct *donburi.ComponentType[T]) (*T, error) {
	if !s.Has(e, ct) {
		return nil, &MissingComponentError{Entity: e, Component: s.registry.Name(s.registry.Capability(ct))}
	}
	return ct.Get(s.world.Entry(e)), nil
}

// Lookup is Get with the store's MissingComponent policy applied: in strict mode
// a missing component panics, otherwise it is logged and ok is false.
func Lookup[T any](s *Store, e donburi.Entity, ct *donburi.ComponentType[T]) (*T, bool) {
	v, err := Get(s, e, ct)
	if err != nil {
		s.mismatch(err.(*MissingComponentError))
		return nil, false
	}
	return v, true
}
