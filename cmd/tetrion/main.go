package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tetrion/driver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tetrion",
		Short: "A guideline-compliant Tetris engine, playable from a terminal",
	}
	root.PersistentFlags().String("config", "", "path to a YAML config file")
	root.PersistentFlags().Int("cols", 0, "playfield width (0 keeps the config/default value)")
	root.PersistentFlags().Int("rows", 0, "playfield visible height (0 keeps the config/default value)")
	root.PersistentFlags().Int64("seed", 0, "bag RNG seed (0 keeps the config/default value)")
	root.AddCommand(newPlayCmd(), newTUICmd())
	return root
}

func driverConfigFromFlags(cmd *cobra.Command) (driver.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	fc, err := loadFileConfig(path)
	if err != nil {
		return driver.Config{}, err
	}
	cfg := fc.apply(driver.DefaultConfig())

	if cols, _ := cmd.Flags().GetInt("cols"); cols != 0 {
		cfg.Cols = cols
	}
	if rows, _ := cmd.Flags().GetInt("rows"); rows != 0 {
		cfg.Rows = rows
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}
