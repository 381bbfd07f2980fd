package input

import "github.com/hajimehoshi/ebiten/v2"

// Binding maps one input bit to physical keys and standard gamepad buttons.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Device polls a keyboard layout and, when present, one gamepad.
type Device struct {
	Bindings map[State]Binding
	Gamepad  ebiten.GamepadID
	UsePad   bool
	Deadzone float64
}

func (d *Device) Poll(uint64) State {
	var s State
	for bit, binding := range d.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				s |= bit
			}
		}
		if !d.UsePad || !ebiten.IsStandardGamepadLayoutAvailable(d.Gamepad) {
			continue
		}
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(d.Gamepad, btn) {
				s |= bit
			}
		}
	}
	if d.UsePad && ebiten.IsStandardGamepadLayoutAvailable(d.Gamepad) {
		s |= d.stick()
	}
	return s
}

// stick folds the left analog stick into directions past the deadzone.
func (d *Device) stick() State {
	var s State
	h := ebiten.StandardGamepadAxisValue(d.Gamepad, ebiten.StandardGamepadAxisLeftStickHorizontal)
	v := ebiten.StandardGamepadAxisValue(d.Gamepad, ebiten.StandardGamepadAxisLeftStickVertical)
	if h < -d.Deadzone {
		s |= Left
	}
	if h > d.Deadzone {
		s |= Right
	}
	if v < -d.Deadzone {
		s |= Up
	}
	if v > d.Deadzone {
		s |= Down
	}
	return s
}
