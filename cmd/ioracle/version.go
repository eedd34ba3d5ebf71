package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ioracle "github.com/dkuanyshbaev/ioracle-core"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ioracle",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ioracle version %s\n", ioracle.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
