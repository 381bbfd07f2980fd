// Package viewer is a debug window for a running match. It draws the
// collision boxes straight from the resolv space and prints each fighter's
// state; there are no sprites.
package viewer

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/match"
	"github.com/automoto/fightcore/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ErrQuit ends RunGame when the window is closed with Escape.
var ErrQuit = errors.New("viewer closed")

type Viewer struct {
	m      *match.Match
	paused bool
	step   bool
	// OnSave is called with the current snapshot when F5 is pressed.
	OnSave func(*match.Snapshot)
}

func New(m *match.Match) *Viewer {
	return &Viewer{m: m}
}

// Run opens the window and blocks until it closes.
func (v *Viewer) Run() error {
	st := v.m.Stage()
	scale := config.Viewer.Scale
	ebiten.SetWindowSize(int(float64(st.Width)*scale), int(float64(st.Height)*scale))
	ebiten.SetWindowTitle("fightcore " + st.Name)
	ebiten.SetTPS(int(config.Frame.GameFPS))
	err := ebiten.RunGame(v)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

func (v *Viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ErrQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		v.paused, v.step = true, true
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		if v.OnSave != nil {
			v.OnSave(v.m.Snapshot())
		}
	}
	if v.paused && !v.step {
		return nil
	}
	v.step = false
	v.m.Tick()
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if e, ok := components.Space.First(v.m.World()); ok {
		for _, obj := range components.Space.Get(e).Objects() {
			c, fill := boxColor(obj)
			if fill {
				vector.FillRect(screen, float32(obj.X), float32(obj.Y), float32(obj.W), float32(obj.H), c, false)
				continue
			}
			outline(screen, obj.X, obj.Y, obj.W, obj.H, c)
		}
	}

	for i, line := range Lines(v.m) {
		ebitenutil.DebugPrintAt(screen, line, 4, 4+i*14)
	}
	if v.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", v.m.Stage().Width-48, 4)
	}
}

func (v *Viewer) Layout(int, int) (int, int) {
	st := v.m.Stage()
	return st.Width, st.Height
}

func boxColor(obj *resolv.Object) (color.RGBA, bool) {
	switch {
	case obj.HasTags(tags.ResolvSolid):
		return config.Viewer.WallColor, true
	case obj.HasTags(tags.ResolvHitbox):
		if e, ok := obj.Data.(*donburi.Entry); ok && e.Valid() && components.Hitbox.Get(e).Kind == animation.Throwbox {
			return config.Viewer.ThrowboxColor, false
		}
		return config.Viewer.HitboxColor, false
	case obj.HasTags(tags.ResolvHurtbox):
		return config.Viewer.HurtboxColor, false
	}
	return config.Viewer.PushboxColor, false
}

func outline(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), 1, c, false)
	vector.FillRect(screen, float32(x), float32(y+h-1), float32(w), 1, c, false)
	vector.FillRect(screen, float32(x), float32(y), 1, float32(h), c, false)
	vector.FillRect(screen, float32(x+w-1), float32(y), 1, float32(h), c, false)
}

// Lines is the text overlay: the frame counter, then one line per fighter.
func Lines(m *match.Match) []string {
	head := fmt.Sprintf("frame %d", m.Frame())
	if hs := m.Hitstop(); hs > 0 {
		head += fmt.Sprintf("  hitstop %d", hs)
	}
	if ts := m.TimeScale(); ts < 1 {
		head += fmt.Sprintf("  x%.2f", ts)
	}
	if m.Over() {
		head += fmt.Sprintf("  KO winner P%d", m.Winner()+1)
	}
	lines := []string{head}
	for _, e := range m.Fighters() {
		act := components.Action.Get(e)
		st := components.State.Get(e)
		line := fmt.Sprintf("P%d %-25s hp %3d combo %d", components.Fighter.Get(e).Slot+1, act.Kind, st.HP, st.ComboCounter)
		if act.Attack != "" {
			line += " " + act.Attack
		}
		if m.Store().Has(e.Entity(), components.AttackState) {
			line += fmt.Sprintf(" %+d", components.AttackState.Get(e).FrameAdvantage)
		}
		lines = append(lines, line)
	}
	return lines
}
