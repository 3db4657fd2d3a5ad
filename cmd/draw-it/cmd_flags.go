package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chadlavi/draw-it/internal/flags"
)

// flagsCmd inspects persisted UI flags
var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Inspect or reset persisted UI flags",
	Long: `Persisted flags remember one-time UI choices between runs, such as
dismissing the rotation warning (` + flags.RotationWarning + `).`,
}

var flagsGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Print a persisted flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlagsGet,
}

var flagsResetCmd = &cobra.Command{
	Use:   "reset [name]",
	Short: "Forget a persisted flag so it reads as its default again",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlagsReset,
}

func openStore() (*flags.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return flags.Open(cfg.FlagStore, cfg.FlagStorePath, nil)
}

func runFlagsGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	name := args[0]
	raw, found, err := store.Lookup(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if !found {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: unset (reads %t)\n", name, store.Read(name))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, raw)
	return nil
}

func runFlagsReset(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	name := args[0]
	if err := store.Reset(name); err != nil {
		return fmt.Errorf("reset %s: %w", name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", name)
	return nil
}
