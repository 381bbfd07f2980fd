package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/input"
	dmath "github.com/yohamta/donburi/features/math"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/ryu.yaml
var defaultCharacterYAML []byte

// DefaultCharacter is the name of the embedded character.
const DefaultCharacter = "ryu"

type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (b Box) Rect() animation.Rect {
	return animation.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// FrameData is the authored timing and effect of one move
type FrameData struct {
	Startup        int `yaml:"startup"`
	Active         int `yaml:"active"`
	Recovery       int `yaml:"recovery"`
	HitAdvantage   int `yaml:"hitAdvantage"`
	BlockAdvantage int `yaml:"blockAdvantage"`
	Damage         int `yaml:"damage"`
	Knockback      Vec `yaml:"knockback"`
	Hitstop        int `yaml:"hitstop"`
}

// Total is the number of frames the move occupies.
func (f FrameData) Total() int { return f.Startup + f.Active + f.Recovery }

// Hitstun is how long the defender stays locked after being hit, at least one frame.
func (f FrameData) Hitstun() int { return max(1, f.Active+f.Recovery+f.HitAdvantage) }

func (f FrameData) Blockstun() int { return max(1, f.Active+f.Recovery+f.BlockAdvantage) }

type AnimationDef struct {
	Name        string `yaml:"name"`
	SheetStart  int    `yaml:"sheetStart"`
	SheetFrames int    `yaml:"sheetFrames"`
	Anchor      string `yaml:"anchor"`
}

// AttackDef is one move. Stance is standing, crouching, jumping or special
// for moves only reachable through a motion. Direction is forward, back or
// empty for any.
type AttackDef struct {
	Name        string `yaml:"name"`
	Strength    string `yaml:"strength"`
	Stance      string `yaml:"stance"`
	Button      string `yaml:"button"`
	Direction   string `yaml:"direction"`
	SheetStart  int    `yaml:"sheetStart"`
	SheetFrames int    `yaml:"sheetFrames"`
	Anchor      string `yaml:"anchor"`
	Knockdown   bool   `yaml:"knockdown"`
	Throw       bool   `yaml:"throw"`
	Hitboxes    []Box  `yaml:"hitboxes"`

	FrameData `yaml:",inline"`
}

// HitData converts the attack into the payload its hitbox carries.
func (a AttackDef) HitData() action.HitData {
	return action.HitData{
		Damage:    a.Damage,
		Knockback: dmath.Vec2{X: a.Knockback.X, Y: a.Knockback.Y},
		Hitstun:   a.Hitstun(),
		Blockstun: a.Blockstun(),
		Hitstop:   min(a.Hitstop, Combat.MaxHitstop),
		Active:    a.Active,
		Knockdown: a.Knockdown,
		Throw:     a.Throw,
	}
}

func (a AttackDef) ActionState() action.ActionState {
	if a.Throw {
		return action.StateThrow
	}
	if s, ok := action.ParseActionState(a.Strength); ok && s.Attack() {
		return s
	}
	return action.StateLight
}

type SpecialDef struct {
	Attack string `yaml:"attack"`
	Motion []int  `yaml:"motion"`
	Button string `yaml:"button"`
	Window int    `yaml:"window"`
}

// Matcher converts the numpad sequence into an input matcher.
func (s SpecialDef) Matcher() (input.Motion, error) {
	btn, err := input.Parse(s.Button)
	if err != nil {
		return input.Motion{}, fmt.Errorf("special %s: %w", s.Attack, err)
	}
	seq := make([]input.Direction, 0, len(s.Motion))
	for _, d := range s.Motion {
		if d < 1 || d > 9 {
			return input.Motion{}, fmt.Errorf("special %s: direction %d out of range", s.Attack, d)
		}
		seq = append(seq, input.Direction(d))
	}
	window := s.Window
	if window <= 0 {
		window = Action.MotionWindow
	}
	return input.Motion{Name: s.Attack, Sequence: seq, Button: btn, Window: window}, nil
}

type TargetComboDef struct {
	From   string `yaml:"from"`
	Button string `yaml:"button"`
	To     string `yaml:"to"`
}

// Character is everything authored for one fighter
type Character struct {
	Name          string           `yaml:"name"`
	HP            int              `yaml:"hp"`
	WalkSpeed     float64          `yaml:"walkSpeed"`
	JumpSpeed     float64          `yaml:"jumpSpeed"`
	Pushbox       Box              `yaml:"pushbox"`
	Hurtbox       Box              `yaml:"hurtbox"`
	CrouchHurtbox Box              `yaml:"crouchHurtbox"`
	Animations    []AnimationDef   `yaml:"animations"`
	Attacks       []AttackDef      `yaml:"attacks"`
	Specials      []SpecialDef     `yaml:"specials"`
	TargetCombos  []TargetComboDef `yaml:"targetCombos"`
}

// Attack looks up an attack by name.
func (c *Character) Attack(name string) (AttackDef, bool) {
	for _, a := range c.Attacks {
		if a.Name == name {
			return a, true
		}
	}
	return AttackDef{}, false
}

// Validate checks cross references between the sections of the file.
func (c *Character) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character has no name")
	}
	if c.Pushbox.W <= 0 || c.Pushbox.H <= 0 {
		return fmt.Errorf("character %s: empty pushbox", c.Name)
	}
	for _, a := range c.Attacks {
		if a.Total() <= 0 {
			return fmt.Errorf("character %s: attack %s has no frames", c.Name, a.Name)
		}
		if _, err := input.Parse(a.Button); err != nil {
			return fmt.Errorf("character %s: attack %s: %w", c.Name, a.Name, err)
		}
	}
	for _, s := range c.Specials {
		if _, ok := c.Attack(s.Attack); !ok {
			return fmt.Errorf("character %s: special references unknown attack %s", c.Name, s.Attack)
		}
		if _, err := s.Matcher(); err != nil {
			return fmt.Errorf("character %s: %w", c.Name, err)
		}
	}
	for _, tc := range c.TargetCombos {
		if _, ok := c.Attack(tc.From); !ok {
			return fmt.Errorf("character %s: target combo from unknown attack %s", c.Name, tc.From)
		}
		if _, ok := c.Attack(tc.To); !ok {
			return fmt.Errorf("character %s: target combo to unknown attack %s", c.Name, tc.To)
		}
	}
	return nil
}

func parseAnchor(s string) animation.Anchor {
	switch s {
	case "TL":
		return animation.TopLeft
	case "TR":
		return animation.TopRight
	case "BR":
		return animation.BottomRight
	}
	return animation.BottomLeft
}

// Library builds the clip library. Plain clips are stretched from the
// authored rate to the game rate; attack clips last exactly their frame data
// and carry one event per hitbox window.
func (c *Character) Library() *animation.Library {
	lib := animation.NewLibrary()
	for _, a := range c.Animations {
		frames := animation.GameFrames(a.SheetFrames, Frame.GameFPS, Frame.AnimationFPS)
		lib.Add(animation.NewClip(a.Name, a.SheetStart, a.SheetFrames, frames, parseAnchor(a.Anchor)))
	}
	for _, a := range c.Attacks {
		clip := animation.NewClip(a.Name, a.SheetStart, a.SheetFrames, a.Total(), parseAnchor(a.Anchor))
		kind := animation.Hitbox
		if a.Throw {
			kind = animation.Throwbox
		}
		boxes := make([]animation.Rect, 0, len(a.Hitboxes))
		for _, b := range a.Hitboxes {
			boxes = append(boxes, b.Rect())
		}
		if a.Active > 0 && len(boxes) > 0 {
			clip.AddEvent(animation.Event{
				Name:     a.Name,
				Kind:     kind,
				Start:    a.Startup,
				Duration: a.Active,
				Boxes:    boxes,
				Hit:      a.HitData(),
			})
		}
		lib.Add(clip)
	}
	return lib
}

// ParseCharacter decodes and validates a character file.
func ParseCharacter(data []byte) (*Character, error) {
	var c Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse character: %w", err)
	}
	if c.HP <= 0 {
		c.HP = Combat.StartingHP
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCharacter loads a character definition.
// Search order: customPath -> ~/.fightcore/characters/<name>.yaml -> ./configs/<name>.yaml -> embedded default
func LoadCharacter(name, customPath string) (*Character, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read character %s: %w", customPath, err)
		}
		c, err := ParseCharacter(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse character %s: %w", customPath, err)
		}
		return c, nil
	}

	if name == "" {
		name = DefaultCharacter
	}
	filename := name + ".yaml"

	if userPath := userConfigPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if c, err := ParseCharacter(data); err == nil {
				return c, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if c, err := ParseCharacter(data); err == nil {
			return c, nil
		}
	}

	if name != DefaultCharacter {
		return nil, fmt.Errorf("character %s not found", name)
	}
	return ParseCharacter(defaultCharacterYAML)
}

// userConfigPath returns the path to a user character file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fightcore", "characters", filename)
}
