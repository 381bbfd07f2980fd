package input

// BufferLen is how many frames of history an actor keeps.
const BufferLen = 32

// Buffer is a ring of the most recent input states, newest first.
type Buffer struct {
	History [BufferLen]State
	Head    int
	Count   int
}

// Push records the state for the current frame.
func (b *Buffer) Push(s State) {
	b.Head = (b.Head + 1) % BufferLen
	b.History[b.Head] = s
	if b.Count < BufferLen {
		b.Count++
	}
}

// At returns the state age frames ago; 0 is the current frame.
func (b *Buffer) At(age int) State {
	if age < 0 || age >= b.Count {
		return 0
	}
	return b.History[(b.Head-age+BufferLen)%BufferLen]
}

func (b *Buffer) Latest() State { return b.At(0) }

// Pressed reports whether any bit of btn went down on the current frame.
func (b *Buffer) Pressed(btn State) bool {
	return b.At(0)&btn&^b.At(1) != 0
}

// Released reports whether any bit of btn went up on the current frame.
func (b *Buffer) Released(btn State) bool {
	return b.At(1)&btn&^b.At(0) != 0
}

// PressedButton returns the lowest attack button pressed this frame.
func (b *Buffer) PressedButton() (State, bool) {
	pressed := b.At(0) & Buttons &^ b.At(1)
	for bit := Btn1; bit <= Btn4 && bit != 0; bit <<= 1 {
		if pressed&bit != 0 {
			return bit, true
		}
	}
	return 0, false
}

// Motion is a directional sequence finished by a button press, for example a
// quarter circle forward: 2, 3, 6 then a button.
type Motion struct {
	Name     string
	Sequence []Direction
	Button   State
	// Window is how many frames back the sequence may start.
	Window int
}

// Matches reports whether m was completed on the current frame.
func (b *Buffer) Matches(m Motion, facingRight bool) bool {
	if len(m.Sequence) == 0 || !b.Pressed(m.Button) {
		return false
	}
	window := m.Window
	if window <= 0 || window > b.Count {
		window = b.Count
	}
	i := len(m.Sequence) - 1
	for age := 0; age < window && i >= 0; age++ {
		if b.At(age).Direction(facingRight) == m.Sequence[i] {
			i--
		}
	}
	return i < 0
}

// DoubleTap reports a second press of dir within window frames of the first,
// with a release in between.
func (b *Buffer) DoubleTap(dir State, window int) bool {
	if !b.Pressed(dir) {
		return false
	}
	released := false
	for age := 1; age <= window && age < b.Count; age++ {
		held := b.At(age).Any(dir)
		if !held {
			released = true
			continue
		}
		if released {
			return true
		}
	}
	return false
}
