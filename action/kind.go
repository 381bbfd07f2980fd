package action

import (
	"fmt"
	"strings"
)

// Kind is the exclusive activity an actor is in.
type Kind uint8

const (
	Neutral Kind = iota
	Moving
	Dashing
	Jumping
	Crouching
	Attacking
	Grappled
	HitStun
	BlockStun
	KnockdownAirborne
	KnockdownGroundOTG
	KnockdownGroundInvincible
	kindCount
)

var kindNames = [...]string{
	"Neutral", "Moving", "Dashing", "Jumping", "Crouching", "Attacking", "Grappled",
	"HitStun", "BlockStun", "KnockdownAirborne", "KnockdownGroundOTG", "KnockdownGroundInvincible",
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Stun reports whether the kind locks the actor out of input.
func (k Kind) Stun() bool {
	switch k {
	case Grappled, HitStun, BlockStun, KnockdownAirborne, KnockdownGroundOTG, KnockdownGroundInvincible:
		return true
	}
	return false
}

// Knockdown reports whether the kind belongs to the knockdown chain.
func (k Kind) Knockdown() bool {
	return k == KnockdownAirborne || k == KnockdownGroundOTG || k == KnockdownGroundInvincible
}

// ActionState is the coarse state published on the actor's state record.
type ActionState uint8

const (
	StateNone ActionState = iota
	StateHitstun
	StateBlockstun
	StateLight
	StateMedium
	StateHeavy
	StateSpecial
	StateThrow
)

var actionStateNames = [...]string{"NONE", "HITSTUN", "BLOCKSTUN", "LIGHT", "MEDIUM", "HEAVY", "SPECIAL", "THROW"}

func (s ActionState) String() string {
	if int(s) >= len(actionStateNames) {
		return fmt.Sprintf("ActionState(%d)", uint8(s))
	}
	return actionStateNames[s]
}

// ParseActionState matches names case-insensitively.
func ParseActionState(s string) (ActionState, bool) {
	for i, name := range actionStateNames {
		if strings.EqualFold(name, s) {
			return ActionState(i), true
		}
	}
	return 0, false
}

// Attack reports whether s is one of the offensive strengths.
func (s ActionState) Attack() bool { return s >= StateLight }

// ActionState derives the published state for k. strength is only consulted for attacks.
func (k Kind) ActionState(strength ActionState) ActionState {
	switch k {
	case HitStun, KnockdownAirborne, KnockdownGroundOTG:
		return StateHitstun
	case BlockStun:
		return StateBlockstun
	case Attacking:
		if strength.Attack() {
			return strength
		}
		return StateLight
	}
	return StateNone
}

// Stance is the actor's posture.
type Stance uint8

const (
	Standing Stance = iota
	CrouchingStance
	JumpingStance
	KnockdownStance
)

func (s Stance) String() string {
	switch s {
	case Standing:
		return "STANDING"
	case CrouchingStance:
		return "CROUCHING"
	case JumpingStance:
		return "JUMPING"
	case KnockdownStance:
		return "KNOCKDOWN"
	}
	return fmt.Sprintf("Stance(%d)", uint8(s))
}
