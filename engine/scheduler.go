package engine

import (
	"fmt"
	"sort"

	"github.com/yohamta/donburi"
)

// Stage is one barrier-separated phase of a tick.
type Stage int

const (
	OnFrameBegin Stage = iota
	PreUpdate
	Update
	PostUpdate
	OnFrameEnd
	stageCount
)

var stageNames = [...]string{"OnFrameBegin", "PreUpdate", "Update", "PostUpdate", "OnFrameEnd"}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Frame describes the tick being executed.
type Frame struct {
	Index uint64
	DT    float64
}

// System runs over every entity whose signature contains Require. Either Each
// (per entity) or All (whole member list) must be set.
type System struct {
	Name    string
	Require []donburi.IComponentType
	Each    func(f Frame, entry *donburi.Entry)
	All     func(f Frame, entries []*donburi.Entry)
}

// Pair is one element of a multi-system cross product.
type Pair struct {
	Main *donburi.Entry
	Sub  *donburi.Entry
}

// PairSet is what a multi-system sees: both member lists and their cross
// product restricted to distinct entities, in main-major order.
type PairSet struct {
	Main  []*donburi.Entry
	Sub   []*donburi.Entry
	Pairs []Pair
}

// MultiSystem compares entities from two independent capability sets.
type MultiSystem struct {
	Name string
	Main []donburi.IComponentType
	Sub  []donburi.IComponentType
	Run  func(f Frame, set PairSet)
}

type membership struct {
	require Signature
	members []donburi.Entity
	present map[donburi.Entity]struct{}
}

func newMembership(req Signature) *membership {
	return &membership{require: req, present: make(map[donburi.Entity]struct{})}
}

type job struct {
	name  string
	task  func(f Frame)
	sys   *System
	multi *MultiSystem
	main  *membership
	sub   *membership
}

// Scheduler executes registered systems in a fixed five-stage pipeline.
type Scheduler struct {
	store  *Store
	stages [stageCount][]*job
	sets   []*membership
	frame  uint64
}

func NewScheduler(store *Store) *Scheduler {
	s := &Scheduler{store: store}
	store.Listen(s.onSignature)
	return s
}

// Add registers a single-set system at the end of the stage's declared order.
func (s *Scheduler) Add(stage Stage, sys System) {
	if sys.Each == nil && sys.All == nil {
		panic("engine: system " + sys.Name + " has no body")
	}
	m := s.track(s.store.registry.Mask(sys.Require...))
	s.stages[stage] = append(s.stages[stage], &job{name: sys.Name, sys: &sys, main: m})
}

func (s *Scheduler) AddMulti(stage Stage, sys MultiSystem) {
	main := s.track(s.store.registry.Mask(sys.Main...))
	sub := s.track(s.store.registry.Mask(sys.Sub...))
	s.stages[stage] = append(s.stages[stage], &job{name: sys.Name, multi: &sys, main: main, sub: sub})
}

// AddTask registers a function that runs once per tick at its position in the stage.
func (s *Scheduler) AddTask(stage Stage, name string, fn func(f Frame)) {
	s.stages[stage] = append(s.stages[stage], &job{name: name, task: fn})
}

// Step runs one tick: every stage in order, every job in a stage in declared order.
func (s *Scheduler) Step(dt float64) Frame {
	s.frame++
	f := Frame{Index: s.frame, DT: dt}
	for stage := Stage(0); stage < stageCount; stage++ {
		for _, j := range s.stages[stage] {
			s.run(f, j)
		}
	}
	return f
}

// FrameIndex is the index of the last executed tick.
func (s *Scheduler) FrameIndex() uint64 { return s.frame }

// SetFrameIndex rewinds or advances the tick counter, used when restoring a snapshot.
func (s *Scheduler) SetFrameIndex(i uint64) { s.frame = i }

// Systems lists job names per stage in execution order.
func (s *Scheduler) Systems(stage Stage) []string {
	names := make([]string, 0, len(s.stages[stage]))
	for _, j := range s.stages[stage] {
		names = append(names, j.name)
	}
	return names
}

// Members returns the entities currently matched by the named system (its main set for multi-systems).
func (s *Scheduler) Members(name string) []donburi.Entity {
	for _, jobs := range s.stages {
		for _, j := range jobs {
			if j.name == name && j.main != nil {
				return append([]donburi.Entity(nil), j.main.members...)
			}
		}
	}
	return nil
}

func (s *Scheduler) run(f Frame, j *job) {
	switch {
	case j.task != nil:
		j.task(f)
	case j.sys != nil:
		entries := s.entries(j.name, j.main)
		if j.sys.All != nil {
			j.sys.All(f, entries)
			return
		}
		for _, entry := range entries {
			// an earlier entity in this pass may have moved this one out of the set
			if _, ok := j.main.present[entry.Entity()]; !ok {
				continue
			}
			if !s.check(j.name, entry.Entity(), j.main.require) {
				continue
			}
			j.sys.Each(f, entry)
		}
	case j.multi != nil:
		set := PairSet{
			Main: s.entries(j.name, j.main),
			Sub:  s.entries(j.name, j.sub),
		}
		for _, a := range set.Main {
			for _, b := range set.Sub {
				if a.Entity() == b.Entity() {
					continue
				}
				set.Pairs = append(set.Pairs, Pair{Main: a, Sub: b})
			}
		}
		j.multi.Run(f, set)
	}
}

// entries snapshots the member list so mutations made by the system do not
// disturb its own iteration.
func (s *Scheduler) entries(name string, m *membership) []*donburi.Entry {
	out := make([]*donburi.Entry, 0, len(m.members))
	for _, e := range m.members {
		if !s.check(name, e, m.require) {
			continue
		}
		out = append(out, s.store.Entry(e))
	}
	return out
}

// check reports whether e still carries req. A member that does not is a
// store inconsistency and goes through the MissingComponent policy.
func (s *Scheduler) check(name string, e donburi.Entity, req Signature) bool {
	if !s.store.Valid(e) {
		return false
	}
	sig := s.store.Signature(e)
	if sig.Contains(req) {
		return true
	}
	missing := req &^ sig
	names := s.store.registry.Names(missing)
	s.store.mismatch(&MissingComponentError{Entity: e, Component: fmt.Sprint(names), System: name})
	return false
}

func (s *Scheduler) track(req Signature) *membership {
	for _, m := range s.sets {
		if m.require == req {
			return m
		}
	}
	m := newMembership(req)
	// entities created before the system was registered
	for _, e := range s.store.Entities() {
		if s.store.Signature(e).Contains(req) {
			m.insert(s.store, e)
		}
	}
	s.sets = append(s.sets, m)
	return m
}

func (s *Scheduler) onSignature(e donburi.Entity, sig Signature, removed bool) {
	for _, m := range s.sets {
		want := !removed && sig.Contains(m.require)
		_, have := m.present[e]
		switch {
		case want && !have:
			m.insert(s.store, e)
		case !want && have:
			m.remove(e)
		}
	}
}

func (m *membership) insert(store *Store, e donburi.Entity) {
	seq := store.Sequence(e)
	i := sort.Search(len(m.members), func(i int) bool {
		return store.Sequence(m.members[i]) > seq
	})
	m.members = append(m.members, 0)
	copy(m.members[i+1:], m.members[i:])
	m.members[i] = e
	m.present[e] = struct{}{}
}

func (m *membership) remove(e donburi.Entity) {
	delete(m.present, e)
	for i, other := range m.members {
		if other == e {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return
		}
	}
}
