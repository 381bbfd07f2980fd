// fightcore drives the fighting-game core from the command line.
//
// Usage:
//
//	fightcore run                - Simulate a match headless from input scripts
//	fightcore view               - Open the debug viewer with keyboard/gamepad input
//	fightcore framedata [name]   - Print the frame data of a character
//
// Global flags:
//
//	--character <path>  - Character YAML (default: embedded ryu)
//	--stage <path>      - Tiled TMX map (default: built-in arena)
//	--strict            - Panic on component mismatches
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/match"
	"github.com/automoto/fightcore/stage"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagCharacter string
	flagStage     string
	flagStrict    bool
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fightcore",
	Short: "Deterministic 2D fighting game core",
	Long: `fightcore runs the fixed-step simulation of a two player fight:
actions and transitions, frame data, hit resolution and physics.

Examples:
  fightcore run --p1 jab.yaml --frames 300
  fightcore run --load quick
  fightcore view --stage ./maps/dojo.tmx
  fightcore framedata`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCharacter, "character", "", "Path to a character YAML")
	rootCmd.PersistentFlags().StringVar(&flagStage, "stage", "", "Path to a Tiled TMX stage")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", config.Debug.Strict, "Panic on component mismatches")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.Debug.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(framedataCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "fightcore",
		ReportTimestamp: true,
		Level:           level,
	}), nil
}

func loadStage() (*stage.Stage, error) {
	if flagStage == "" {
		return stage.Default(), nil
	}
	return stage.Load(os.DirFS(filepath.Dir(flagStage)), filepath.Base(flagStage))
}

// matchOptions loads what every command shares: the character, the stage
// and the logger.
func matchOptions() (match.Options, error) {
	logger, err := newLogger()
	if err != nil {
		return match.Options{}, err
	}
	char, err := config.LoadCharacter("", flagCharacter)
	if err != nil {
		return match.Options{}, err
	}
	st, err := loadStage()
	if err != nil {
		return match.Options{}, err
	}
	return match.Options{
		Characters: []*config.Character{char},
		Stage:      st,
		Logger:     logger,
		Strict:     flagStrict,
	}, nil
}

// restore loads slot into m when a slot name is given.
func restore(m *match.Match, slot string) error {
	if slot == "" {
		return nil
	}
	slots, err := match.OpenSlots(match.AppName)
	if err != nil {
		return err
	}
	snap, err := slots.Load(slot)
	if err != nil {
		return err
	}
	return m.Restore(snap)
}

func save(m *match.Match, slot string, snap *match.Snapshot) error {
	slots, err := match.OpenSlots(match.AppName)
	if err != nil {
		return err
	}
	if err := slots.Save(slot, snap); err != nil {
		return err
	}
	m.Logger().Info("saved", "slot", slot, "frame", snap.Frame)
	return nil
}
