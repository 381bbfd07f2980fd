package main

import (
	"fmt"
	"os"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/match"
	"github.com/automoto/fightcore/systems"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
)

var (
	flagFrames int
	flagP1     string
	flagP2     string
	flagSave   string
	flagLoad   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a match headless",
	Long: `Run the simulation for a number of frames without a window. Each
player is driven by an input script; a player without one holds nothing.

Script format:
  name: jab
  loop: false
  steps:
    - {frames: 4, hold: right}
    - {frames: 1, hold: btn1}

Examples:
  fightcore run --p1 jab.yaml --frames 120
  fightcore run --p1 jab.yaml --save quick
  fightcore run --load quick --frames 60`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to simulate")
	runCmd.Flags().StringVar(&flagP1, "p1", "", "Input script for player 1")
	runCmd.Flags().StringVar(&flagP2, "p2", "", "Input script for player 2")
	runCmd.Flags().StringVar(&flagSave, "save", "", "Save the final state to this slot")
	runCmd.Flags().StringVar(&flagLoad, "load", "", "Start from the state saved in this slot")
}

func loadScript(path string) (input.Source, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return input.LoadScript(f)
}

func runRun(cmd *cobra.Command, _ []string) error {
	opts, err := matchOptions()
	if err != nil {
		return err
	}
	for _, path := range []string{flagP1, flagP2} {
		src, err := loadScript(path)
		if err != nil {
			return err
		}
		opts.Sources = append(opts.Sources, src)
	}

	m, err := match.New(opts)
	if err != nil {
		return err
	}
	if err := restore(m, flagLoad); err != nil {
		return err
	}

	logger := m.Logger()
	systems.HitLandedEvent.Subscribe(m.World(), func(_ donburi.World, ev systems.HitLanded) {
		logger.Info("hit", "frame", ev.Frame, "attacker", m.Slot(ev.Attacker)+1,
			"attack", ev.Attack, "damage", ev.Damage, "throw", ev.Throw)
	})

	for i := 0; i < flagFrames && !m.Over(); i++ {
		m.Tick()
	}

	for _, e := range m.Fighters() {
		act := components.Action.Get(e)
		st := components.State.Get(e)
		pos := components.Transform.Get(e).Position
		logger.Info("fighter", "slot", components.Fighter.Get(e).Slot+1, "kind", act.Kind,
			"hp", st.HP, "x", pos.X, "y", pos.Y)
	}
	if m.Over() {
		logger.Info("knockout", "frame", m.Frame(), "winner", m.Winner()+1)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "frame %d\n", m.Frame())

	if flagSave != "" {
		return save(m, flagSave, m.Snapshot())
	}
	return nil
}
