package engine_test

import (
	"errors"
	"testing"

	"github.com/automoto/fightcore/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Health struct{ HP int }

var (
	position = donburi.NewComponentType[Position]()
	velocity = donburi.NewComponentType[Velocity]()
	health   = donburi.NewComponentType[Health]()
	marker   = donburi.NewTag()
)

func newTestStore(opts ...engine.StoreOption) *engine.Store {
	reg := engine.NewRegistry()
	reg.Register(position, engine.Named("Position"))
	reg.Register(velocity, engine.Named("Velocity"))
	reg.Register(health, engine.Named("Health"), engine.Transient())
	reg.Register(marker, engine.Named("Marker"), engine.Ability())
	return engine.NewStore(donburi.NewWorld(), reg, opts...)
}

func TestRegistry(t *testing.T) {
	reg := engine.NewRegistry()
	a := reg.Register(position, engine.Named("Position"))
	b := reg.Register(velocity, engine.Transient())

	assert.Equal(t, engine.Capability(0), a)
	assert.Equal(t, engine.Capability(1), b)
	assert.Equal(t, a, reg.Register(position), "registering twice keeps the bit")
	assert.True(t, reg.Transient().Has(b))
	assert.False(t, reg.Transient().Has(a))

	mask := reg.Mask(position, velocity)
	assert.Equal(t, 2, mask.Len())
	assert.True(t, mask.Contains(reg.Mask(position)))
	assert.False(t, reg.Mask(position).Contains(mask))

	c, ok := reg.ByName("Position")
	require.True(t, ok)
	assert.Equal(t, a, c)
	assert.Equal(t, []string{"Position"}, reg.Names(reg.Mask(position)))
}

func TestStoreSignature(t *testing.T) {
	s := newTestStore()
	e := s.Create(position)
	reg := s.Registry()

	assert.True(t, s.Has(e, position))
	assert.False(t, s.Has(e, velocity))

	engine.Add(s, e, velocity, &Velocity{DX: 2})
	assert.Equal(t, reg.Mask(position, velocity), s.Signature(e))

	v, err := engine.Get(s, e, velocity)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.DX)

	engine.Add(s, e, velocity, &Velocity{DX: 5})
	v, _ = engine.Get(s, e, velocity)
	assert.Equal(t, 5.0, v.DX, "adding an attached component overwrites it")

	engine.Remove(s, e, velocity)
	assert.Equal(t, reg.Mask(position), s.Signature(e))

	_, err = engine.Get(s, e, velocity)
	assert.True(t, errors.Is(err, engine.ErrMissingComponent))
	var missing *engine.MissingComponentError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Velocity", missing.Component)
}

func TestStoreStripAndHooks(t *testing.T) {
	reg := engine.NewRegistry()
	var added, removed int
	reg.Register(position)
	reg.Register(health, engine.Transient(),
		engine.OnAdd(func(*engine.Store, *donburi.Entry) { added++ }),
		engine.OnRemove(func(*engine.Store, *donburi.Entry) { removed++ }))
	reg.Register(marker, engine.Transient())
	s := engine.NewStore(donburi.NewWorld(), reg)

	e := s.Create(position, health)
	s.Attach(e, marker)
	assert.Equal(t, 1, added)

	stripped := s.Strip(e, reg.Transient())
	assert.Equal(t, reg.Mask(health, marker), stripped)
	assert.Equal(t, reg.Mask(position), s.Signature(e))
	assert.Equal(t, 1, removed)

	assert.Zero(t, s.Strip(e, reg.Transient()), "nothing left to strip")
}

func TestStoreDestroy(t *testing.T) {
	s := newTestStore()
	a := s.Create(position)
	b := s.Create(position)
	assert.Less(t, s.Sequence(a), s.Sequence(b))

	var gone []donburi.Entity
	s.Listen(func(e donburi.Entity, _ engine.Signature, removed bool) {
		if removed {
			gone = append(gone, e)
		}
	})

	s.Destroy(a)
	assert.False(t, s.Valid(a))
	assert.True(t, s.Valid(b))
	assert.Equal(t, []donburi.Entity{a}, gone)
	assert.Equal(t, []donburi.Entity{b}, s.Entities())

	s.Destroy(a)
	assert.Len(t, gone, 1, "destroying twice is a no-op")
}

func TestLookupPolicy(t *testing.T) {
	t.Run("release degrades", func(t *testing.T) {
		s := newTestStore()
		e := s.Create(position)
		v, ok := engine.Lookup(s, e, velocity)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("strict panics", func(t *testing.T) {
		s := newTestStore(engine.Strict(true))
		e := s.Create(position)
		assert.Panics(t, func() { engine.Lookup(s, e, velocity) })
	})
}
