// Package input turns per-frame held buttons into the facts the action
// systems consume: presses, motions and double taps.
package input

import (
	"fmt"
	"strings"
)

// State is the per-frame bitset of held directions and buttons.
type State uint8

const (
	Up State = 1 << iota
	Left
	Down
	Right
	Btn1
	Btn2
	Btn3
	Btn4
)

// Buttons masks the four attack buttons.
const Buttons = Btn1 | Btn2 | Btn3 | Btn4

var names = []struct {
	bit  State
	name string
}{
	{Up, "up"}, {Left, "left"}, {Down, "down"}, {Right, "right"},
	{Btn1, "btn1"}, {Btn2, "btn2"}, {Btn3, "btn3"}, {Btn4, "btn4"},
}

// Held reports whether every bit of b is held.
func (s State) Held(b State) bool { return b != 0 && s&b == b }

// Any reports whether any bit of b is held.
func (s State) Any(b State) bool { return s&b != 0 }

func (s State) String() string {
	if s == 0 {
		return "-"
	}
	var parts []string
	for _, n := range names {
		if s&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseButton resolves one button name such as "left" or "btn2".
func ParseButton(name string) (State, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range names {
		if n.name == name {
			return n.bit, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Parse reads a "+" separated list of buttons; "-" or "" is nothing held.
func Parse(s string) (State, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	var st State
	for _, part := range strings.Split(s, "+") {
		b, err := ParseButton(part)
		if err != nil {
			return 0, err
		}
		st |= b
	}
	return st, nil
}

// Direction is a numpad direction: 5 is neutral, 6 is forward, 4 is back, 2 is down.
type Direction uint8

// Direction resolves s relative to the way the actor faces.
func (s State) Direction(facingRight bool) Direction {
	forward, back := Right, Left
	if !facingRight {
		forward, back = Left, Right
	}
	x := 0
	if s.Any(forward) && !s.Any(back) {
		x = 1
	} else if s.Any(back) && !s.Any(forward) {
		x = -1
	}
	y := 0
	if s.Any(Up) && !s.Any(Down) {
		y = 1
	} else if s.Any(Down) && !s.Any(Up) {
		y = -1
	}
	return Direction(5 + x + 3*y)
}

// Forward is the held-direction bit that points toward facing.
func Forward(facingRight bool) State {
	if facingRight {
		return Right
	}
	return Left
}

// Back is the held-direction bit pointing away from facing.
func Back(facingRight bool) State {
	if facingRight {
		return Left
	}
	return Right
}
