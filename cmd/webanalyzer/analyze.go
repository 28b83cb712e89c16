package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze one URL and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, fetchErr := buildService().Analyze(cmd.Context(), args[0])
			if fetchErr != nil {
				return fetchErr
			}

			out, err := json.MarshalIndent(result.Report, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			fmt.Fprintln(cmd.OutOrStdout(), result.Diagram)
			return nil
		},
	}
}
