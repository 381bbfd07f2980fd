package config

import "image/color"

type Config struct {
	Width  int
	Height int
}

// FrameConfig fixes the simulation rate and the rate clips were authored at
type FrameConfig struct {
	GameFPS      float64
	AnimationFPS float64
	SecPerFrame  float64
}

// PhysicsConfig contains physics-related configuration values
type PhysicsConfig struct {
	Gravity      float64 // px/s^2
	MaxFallSpeed float64 // px/s
	Restitution  float64 // Fraction of speed kept when bouncing off a wall in hitstun
	CellSize     int     // resolv space cell size
}

// ActionConfig contains the tunables the transition systems read
type ActionConfig struct {
	DashFrames      int
	DashSpeedScale  float64 // Dash speed as a multiple of walk speed
	DoubleTapWindow int     // Frames between the two taps of a dash
	MotionWindow    int     // Frames a special move motion may take
	HitstunMedium   int     // Hitstun above this plays the medium reaction
	HitstunHeavy    int     // Hitstun above this plays the heavy reaction
	CrouchHitstun   int     // Crouching reaction plays below this hitstun
}

// CombatConfig contains combat-related configuration values
type CombatConfig struct {
	WallPushFrames int     // Frames a cornered defender pushes the attacker back for
	WallPushScale  float64 // Fraction of knockback converted into push-back distance
	MaxHitstop     int
	StartingHP     int

	// KO slow motion
	KOTimeScale  float64
	KOSlowFrames int
}

// ArenaConfig is the fallback stage when no TMX map is given
type ArenaConfig struct {
	Width      float64
	Height     float64
	FloorY     float64
	WallWidth  float64
	SpawnInset float64 // Distance of each spawn from the arena center
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Strict   bool // Panic on signature mismatches instead of skipping
	LogLevel string
}

// ViewerConfig contains debug viewer colors and layout
type ViewerConfig struct {
	Scale         float64
	PushboxColor  color.RGBA
	HurtboxColor  color.RGBA
	HitboxColor   color.RGBA
	ThrowboxColor color.RGBA
	WallColor     color.RGBA
	TextColor     color.RGBA
}

var C *Config
var Frame FrameConfig
var Physics PhysicsConfig
var Action ActionConfig
var Combat CombatConfig
var Arena ArenaConfig
var Debug DebugConfig
var Viewer ViewerConfig

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Frame = FrameConfig{
		GameFPS:      60,
		AnimationFPS: 16,
		SecPerFrame:  1.0 / 60.0,
	}

	Physics = PhysicsConfig{
		Gravity:      2400,
		MaxFallSpeed: 1200,
		Restitution:  0.5,
		CellSize:     16,
	}

	Action = ActionConfig{
		DashFrames:      16,
		DashSpeedScale:  1.5,
		DoubleTapWindow: 12,
		MotionWindow:    15,
		HitstunMedium:   10,
		HitstunHeavy:    15,
		CrouchHitstun:   16,
	}

	Combat = CombatConfig{
		WallPushFrames: 6,
		WallPushScale:  0.25,
		MaxHitstop:     20,
		StartingHP:     100,
		KOTimeScale:    0.25,
		KOSlowFrames:   90,
	}

	Arena = ArenaConfig{
		Width:      640,
		Height:     360,
		FloorY:     320,
		WallWidth:  16,
		SpawnInset: 80,
	}

	Debug = DebugConfig{
		Strict:   false,
		LogLevel: "info",
	}

	Viewer = ViewerConfig{
		Scale:         2,
		PushboxColor:  color.RGBA{R: 0, G: 100, B: 255, A: 160},
		HurtboxColor:  color.RGBA{R: 0, G: 255, B: 60, A: 120},
		HitboxColor:   color.RGBA{R: 255, G: 0, B: 0, A: 180},
		ThrowboxColor: color.RGBA{R: 255, G: 180, B: 50, A: 180},
		WallColor:     color.RGBA{R: 128, G: 128, B: 128, A: 255},
		TextColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}
