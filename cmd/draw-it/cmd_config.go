package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chadlavi/draw-it/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the draw-it configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to ~/.draw-it/config.json",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	path, err := config.GlobalPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
