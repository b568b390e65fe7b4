package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kreditku_backend/internals/configs"
)

var Version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "kreditku-cli",
		Short:         "Kreditku - alat operasional (migrate, seed, cleanup, simulasi)",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			configs.SyncLogger()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "file YAML (section database.*), default dari ENV")

	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(seedCmd(&configPath))
	rootCmd.AddCommand(cleanupCmd(&configPath))
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
