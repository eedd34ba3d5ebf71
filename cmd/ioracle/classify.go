package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dkuanyshbaev/ioracle-core/pkg/classifier"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify whitespace-separated samples read from stdin",
	Long: `Reads integer samples from stdin and prints the line they classify to,
using the configured bias and threshold. Useful for tuning against recorded windows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		params := cfg.ClassifierParams()

		var samples []int
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			v, err := strconv.Atoi(scanner.Text())
			if err != nil {
				return fmt.Errorf("sample %q: %w", scanner.Text(), err)
			}
			samples = append(samples, v)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read samples: %w", err)
		}

		maxima, minima := classifier.Extrema(samples, params)
		line := classifier.Classify(samples, params)
		fmt.Fprintf(cmd.OutOrStdout(), "samples=%d maxima=%d minima=%d line=%s\n", len(samples), maxima, minima, line)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
