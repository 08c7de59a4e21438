package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratlens/stratlens/internal/config"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		query   string
		targets string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a single analysis and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			a, err := buildAnalyzer(cfg)
			if err != nil {
				if isCredentialError(err) {
					return fmt.Errorf("GROQ_API_KEY is missing or invalid; export a valid credential and retry")
				}
				return err
			}

			report, status := a.Run(cmd.Context(), query, targets)
			fmt.Fprintln(cmd.OutOrStdout(), report)
			fmt.Fprintln(cmd.ErrOrStderr(), status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "research query to analyze")
	cmd.Flags().StringVarP(&targets, "targets", "t", "", "comma-separated target entities (maximum 8)")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}
