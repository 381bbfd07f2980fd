package config

import (
	"github.com/automoto/fightcore/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputConfig holds the keyboard and gamepad layout of each player slot
type InputConfig struct {
	Players [2]map[input.State]input.Binding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

// Device builds the polling device for a player slot.
func (c InputConfig) Device(slot int, gamepad ebiten.GamepadID, usePad bool) *input.Device {
	return &input.Device{
		Bindings: c.Players[slot%len(c.Players)],
		Gamepad:  gamepad,
		UsePad:   usePad,
		Deadzone: c.AnalogDeadzone,
	}
}

func init() {
	pad := map[input.State][]ebiten.StandardGamepadButton{
		input.Up:    {ebiten.StandardGamepadButtonLeftTop},
		input.Left:  {ebiten.StandardGamepadButtonLeftLeft},
		input.Down:  {ebiten.StandardGamepadButtonLeftBottom},
		input.Right: {ebiten.StandardGamepadButtonLeftRight},
		// X / Square
		input.Btn1: {ebiten.StandardGamepadButtonRightLeft},
		// Y / Triangle
		input.Btn2: {ebiten.StandardGamepadButtonRightTop},
		// RB / R1
		input.Btn3: {ebiten.StandardGamepadButtonFrontTopRight},
		// A / Cross
		input.Btn4: {ebiten.StandardGamepadButtonRightBottom},
	}

	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Players: [2]map[input.State]input.Binding{
			{
				input.Up:    {Keys: []ebiten.Key{ebiten.KeyW}, StandardGamepadButtons: pad[input.Up]},
				input.Left:  {Keys: []ebiten.Key{ebiten.KeyA}, StandardGamepadButtons: pad[input.Left]},
				input.Down:  {Keys: []ebiten.Key{ebiten.KeyS}, StandardGamepadButtons: pad[input.Down]},
				input.Right: {Keys: []ebiten.Key{ebiten.KeyD}, StandardGamepadButtons: pad[input.Right]},
				input.Btn1:  {Keys: []ebiten.Key{ebiten.KeyU}, StandardGamepadButtons: pad[input.Btn1]},
				input.Btn2:  {Keys: []ebiten.Key{ebiten.KeyI}, StandardGamepadButtons: pad[input.Btn2]},
				input.Btn3:  {Keys: []ebiten.Key{ebiten.KeyO}, StandardGamepadButtons: pad[input.Btn3]},
				input.Btn4:  {Keys: []ebiten.Key{ebiten.KeyJ}, StandardGamepadButtons: pad[input.Btn4]},
			},
			{
				input.Up:    {Keys: []ebiten.Key{ebiten.KeyUp}, StandardGamepadButtons: pad[input.Up]},
				input.Left:  {Keys: []ebiten.Key{ebiten.KeyLeft}, StandardGamepadButtons: pad[input.Left]},
				input.Down:  {Keys: []ebiten.Key{ebiten.KeyDown}, StandardGamepadButtons: pad[input.Down]},
				input.Right: {Keys: []ebiten.Key{ebiten.KeyRight}, StandardGamepadButtons: pad[input.Right]},
				input.Btn1:  {Keys: []ebiten.Key{ebiten.KeyNumpad4}, StandardGamepadButtons: pad[input.Btn1]},
				input.Btn2:  {Keys: []ebiten.Key{ebiten.KeyNumpad5}, StandardGamepadButtons: pad[input.Btn2]},
				input.Btn3:  {Keys: []ebiten.Key{ebiten.KeyNumpad6}, StandardGamepadButtons: pad[input.Btn3]},
				input.Btn4:  {Keys: []ebiten.Key{ebiten.KeyNumpad1}, StandardGamepadButtons: pad[input.Btn4]},
			},
		},
	}
}
