package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show item categories and spawn rates",
	Long:  `Shows the falling item categories from the active configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func runRules(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	rules, err := catch.RulesFromConfig(cfg)
	if err != nil {
		return err
	}

	totalWeight := 0
	for _, c := range catch.Categories() {
		if c.IsReward() {
			totalWeight += rules.Spec(c).Weight
		}
	}

	fmt.Println("Falling items:")
	fmt.Println()
	fmt.Printf("  %-5s  %-8s  %-6s  %-6s  %s\n", "Glyph", "Name", "Points", "Chance", "Speed")
	fmt.Printf("  %-5s  %-8s  %-6s  %-6s  %s\n", "-----", "----", "------", "------", "-----")

	for _, c := range catch.Categories() {
		spec := rules.Spec(c)
		chance := "-"
		if c.IsReward() && totalWeight > 0 {
			chance = fmt.Sprintf("%d%%", spec.Weight*100/totalWeight)
		}
		fmt.Printf("  %-5c  %-8s  %-6d  %-6s  %.0f\n", spec.Glyph, c, spec.Points, chance, spec.FallSpeed)
	}

	fmt.Println()
	fmt.Printf("A sweet falls every %s, lightning every %s.\n", rules.RewardInterval, rules.HazardInterval)
	fmt.Println("Run 'catcher play <player-id>' to play.")
	return nil
}
