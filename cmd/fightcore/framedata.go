package main

import (
	"fmt"

	"github.com/automoto/fightcore/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var framedataCmd = &cobra.Command{
	Use:   "framedata [character]",
	Short: "Print a character's frame data",
	Long: `List every attack of a character with its startup, active and
recovery frames and its advantage on hit and on block.

Examples:
  fightcore framedata
  fightcore framedata ryu
  fightcore framedata --character ./configs/ken.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFramedata,
}

var titleStyle = lipgloss.NewStyle().Bold(true)

func signed(n int) string { return fmt.Sprintf("%+d", n) }

func runFramedata(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	char, err := config.LoadCharacter(name, flagCharacter)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Move", "Input", "Startup", "Active", "Recovery", "Total", "Hit", "Block", "Damage", "Hitstop")
	for _, a := range char.Attacks {
		move := a.Name
		if a.Knockdown {
			move += " (KD)"
		}
		button := a.Button
		if a.Stance != "" && a.Stance != "standing" {
			button = a.Stance + " " + button
		}
		t.Row(
			move,
			button,
			fmt.Sprint(a.Startup),
			fmt.Sprint(a.Active),
			fmt.Sprint(a.Recovery),
			fmt.Sprint(a.Total()),
			signed(a.HitAdvantage),
			signed(a.BlockAdvantage),
			fmt.Sprint(a.Damage),
			fmt.Sprint(a.HitData().Hitstop),
		)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s  hp %d  walk %.0f  jump %.0f", char.Name, char.HP, char.WalkSpeed, char.JumpSpeed)))
	fmt.Fprintln(out, t.String())
	return nil
}
