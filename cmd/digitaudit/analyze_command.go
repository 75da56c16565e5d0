package main

import (
	"fmt"

	"github.com/petrzlen/digitaudit/pkg/naming"
	"github.com/petrzlen/digitaudit/pkg/sequence"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <transcript>",
		Short: "Interpret a digit transcript without any audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := sequence.Interpret(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Digits: %v\n", summary.Digits)
			fmt.Fprintf(out, "Count of Audible Words: %d\n", summary.WordCount)
			fmt.Fprintf(out, "Words Out of Order: %t\n", summary.OutOfOrder)
			fmt.Fprintf(out, "Longest Consecutive Count: %d\n", summary.LongestRun)
			return nil
		},
	}
}

func newTimestampCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "timestamp <filename>",
		Short: "Print the ISO-8601 timestamp encoded in a recording filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), naming.TimestampOrSentinel(args[0]))
			return nil
		},
	}
}
