package engine

import (
	"fmt"
	"math/bits"

	"github.com/yohamta/donburi"
)

// MaxCapabilities is the number of distinct component types a Signature can hold.
const MaxCapabilities = 64

// Capability is the bit a component type occupies in an entity signature.
type Capability uint8

// Signature is the capability bitset of one entity.
type Signature uint64

func (s Signature) Has(c Capability) bool { return s&(1<<c) != 0 }

func (s Signature) With(c Capability) Signature { return s | 1<<c }

func (s Signature) Without(c Capability) Signature { return s &^ (1 << c) }

// Contains reports whether every capability in req is present in s.
func (s Signature) Contains(req Signature) bool { return s&req == req }

func (s Signature) Len() int { return bits.OnesCount64(uint64(s)) }

// Hook runs synchronously when a component is attached to or detached from an entity.
type Hook func(s *Store, entry *donburi.Entry)

type capabilityInfo struct {
	componentType donburi.IComponentType
	name          string
	transient     bool
	ability       bool
	onAdd         Hook
	onRemove      Hook
}

// RegisterOption configures a capability at registration time.
type RegisterOption func(*capabilityInfo)

// Transient marks a capability as transition-dependent: every transition reset strips it.
func Transient() RegisterOption {
	return func(c *capabilityInfo) { c.transient = true }
}

// Ability marks a capability as an input ability toggled by DisableAbilities/EnableAbilities.
func Ability() RegisterOption {
	return func(c *capabilityInfo) { c.ability = true }
}

func Named(name string) RegisterOption {
	return func(c *capabilityInfo) { c.name = name }
}

func OnAdd(h Hook) RegisterOption {
	return func(c *capabilityInfo) { c.onAdd = h }
}

func OnRemove(h Hook) RegisterOption {
	return func(c *capabilityInfo) { c.onRemove = h }
}

// Registry maps component types to capability bits in registration order.
type Registry struct {
	byType    map[donburi.IComponentType]Capability
	infos     []capabilityInfo
	transient Signature
	abilities Signature
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[donburi.IComponentType]Capability),
	}
}

// Register assigns the next free bit to ct. Registering a type twice returns the
// existing bit and applies the new options on top of the old ones.
func (r *Registry) Register(ct donburi.IComponentType, opts ...RegisterOption) Capability {
	c, ok := r.byType[ct]
	if !ok {
		if len(r.infos) >= MaxCapabilities {
			panic(fmt.Sprintf("engine: more than %d capabilities registered", MaxCapabilities))
		}
		c = Capability(len(r.infos))
		r.byType[ct] = c
		r.infos = append(r.infos, capabilityInfo{
			componentType: ct,
			name:          fmt.Sprintf("%T", ct),
		})
	}

	info := &r.infos[c]
	for _, opt := range opts {
		opt(info)
	}
	if info.transient {
		r.transient = r.transient.With(c)
	}
	if info.ability {
		r.abilities = r.abilities.With(c)
	}
	return c
}

// Capability returns the bit for ct, registering it on first use.
func (r *Registry) Capability(ct donburi.IComponentType) Capability {
	if c, ok := r.byType[ct]; ok {
		return c
	}
	return r.Register(ct)
}

func (r *Registry) Lookup(ct donburi.IComponentType) (Capability, bool) {
	c, ok := r.byType[ct]
	return c, ok
}

// Mask builds the signature required by a list of component types.
func (r *Registry) Mask(cts ...donburi.IComponentType) Signature {
	var sig Signature
	for _, ct := range cts {
		sig = sig.With(r.Capability(ct))
	}
	return sig
}

func (r *Registry) Transient() Signature { return r.transient }

func (r *Registry) Abilities() Signature { return r.abilities }

func (r *Registry) Len() int { return len(r.infos) }

func (r *Registry) Name(c Capability) string {
	if int(c) >= len(r.infos) {
		return fmt.Sprintf("capability(%d)", c)
	}
	return r.infos[c].name
}

// ByName resolves a capability from its registered name.
func (r *Registry) ByName(name string) (Capability, bool) {
	for i := range r.infos {
		if r.infos[i].name == name {
			return Capability(i), true
		}
	}
	return 0, false
}

// Names lists the capability names present in sig in bit order.
func (r *Registry) Names(sig Signature) []string {
	names := make([]string, 0, sig.Len())
	for i := range r.infos {
		if sig.Has(Capability(i)) {
			names = append(names, r.infos[i].name)
		}
	}
	return names
}

// Type returns the component type registered for c, or nil when c is unused.
func (r *Registry) Type(c Capability) donburi.IComponentType {
	if int(c) >= len(r.infos) {
		return nil
	}
	return r.infos[c].componentType
}

func (r *Registry) componentType(c Capability) donburi.IComponentType {
	return r.infos[c].componentType
}

func (r *Registry) info(c Capability) *capabilityInfo {
	return &r.infos[c]
}
