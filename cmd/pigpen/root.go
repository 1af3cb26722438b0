package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/pigpen/config"
)

// Global flags available to all subcommands
var configFile string

// NewRootCmd creates the root command; with no subcommand it runs the game
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pigpen",
		Short: "pigpen - a tiny terminal arcade with a fixed-step pen and a live mixer",
		Long: `pigpen runs a fixed-step physics pen in the terminal while a procedural
music loop and synthesized sound effects play through the audio device.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, defaultDeps())
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// NewRunCmd creates the run subcommand, the same as running the root command
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the game (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(cmd, defaultDeps())
		},
	}
}

// NewVersionCmd creates the version subcommand
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("pigpen %s (commit: %s, built: %s)\n", version, commit, date)
			return nil
		},
	}
}
