package main

import (
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/match"
	"github.com/automoto/fightcore/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagViewLoad string
	flagViewSave string
	flagPads     bool
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the debug viewer",
	Long: `Play a match in a window that draws pushboxes, hurtboxes and hitboxes.

Controls:
  P1     WASD move, U I O attack, J throw
  P2     arrows move, numpad 4 5 6 attack, numpad 1 throw
  P      pause
  .      step one frame
  F5     save to the --save slot
  Esc    quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagViewLoad, "load", "", "Start from the state saved in this slot")
	viewCmd.Flags().StringVar(&flagViewSave, "save", "quick", "Slot written by F5")
	viewCmd.Flags().BoolVar(&flagPads, "gamepads", true, "Poll gamepads 0 and 1 as well as the keyboard")
}

func runView(_ *cobra.Command, _ []string) error {
	opts, err := matchOptions()
	if err != nil {
		return err
	}
	for slot := 0; slot < match.FighterSlots; slot++ {
		var src input.Source = config.Input.Device(slot, ebiten.GamepadID(slot), flagPads)
		opts.Sources = append(opts.Sources, src)
	}

	m, err := match.New(opts)
	if err != nil {
		return err
	}
	if err := restore(m, flagViewLoad); err != nil {
		return err
	}

	v := viewer.New(m)
	v.OnSave = func(snap *match.Snapshot) {
		if err := save(m, flagViewSave, snap); err != nil {
			m.Logger().Warn("save failed", "slot", flagViewSave, "err", err)
		}
	}
	return v.Run()
}
