package main

import (
	"github.com/spf13/cobra"

	"github.com/dkuanyshbaev/ioracle-core/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the installation loop",
	Long:  `Binds the command gate and cycles Idle, Acquire and Present until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.RunInstallation(cfg, newLogger(cfg))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
