package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkuanyshbaev/ioracle-core/internal/presentation/tui"
	"github.com/dkuanyshbaev/ioracle-core/pkg/control"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Request a reading",
	Long: `Sends the read command to the gate. With --wait it also binds the result
endpoint and prints "<primary>|<related>" once the reading is published.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		wait, _ := cmd.Flags().GetDuration("wait")

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var receiver *control.Receiver
		if wait > 0 {
			receiver, err = control.NewReceiver(cfg.Control.Out)
			if err != nil {
				return err
			}
			defer receiver.Close()
		}

		if err := control.SendCommand(ctx, cfg.Control.Gate, control.CommandRead); err != nil {
			return err
		}
		if receiver == nil {
			return nil
		}

		waitCtx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		msg, err := receiver.Receive(waitCtx)
		if err != nil {
			return fmt.Errorf("no result: %w", err)
		}
		primary, related, err := control.ParseResult(msg)
		if err != nil {
			return err
		}

		pretty, _ := cmd.Flags().GetBool("pretty")
		if !pretty {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		}
		render, err := tui.NewRenderer("")
		if err != nil {
			return err
		}
		out, err := render(tui.ReadingMarkdown(primary, related))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(triggerCmd)
	triggerCmd.Flags().Duration("wait", 0, "Wait up to this long for the result (e.g. 90s); 0 returns immediately")
	triggerCmd.Flags().Bool("pretty", false, "Draw the hexagrams instead of printing the raw result")
}
