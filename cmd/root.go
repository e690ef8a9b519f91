package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Troublor/erebus-infoflow/config"
	"github.com/Troublor/erebus-infoflow/global"
)

var (
	// Used for flags.
	rootCmd = &cobra.Command{
		Use:   "infoflow",
		Short: "Replay emulator operation traces through the taint engine",
	}
)

// Execute executes the root command.
func Execute() error {
	defer global.Cleanup()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().AddFlagSet(config.GlobalFlagSet)
	err := viper.BindPFlags(config.GlobalFlagSet)
	if err != nil {
		panic(fmt.Errorf("failed to bind global flags: %w", err))
	}

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(opsCmd)
}
