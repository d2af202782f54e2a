package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "socialgraph",
		Short: "Builds a synthetic social graph of people and answers queries about it",
		Long: `socialgraph loads people from a paginated remote collection, links them at random
and answers mutual-connection, community and influence queries.`,
		SilenceUsage: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Load the graph and serve queries over HTTP",
		RunE:  runServe,
	}
	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Load the graph once and print the query results",
		RunE:  runAnalyze,
	}

	analyzeFirst  string
	analyzeSecond string
	analyzeSeed   int64
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeFirst, "first", "", "first person of the mutual connections query")
	analyzeCmd.Flags().StringVar(&analyzeSecond, "second", "", "second person of the mutual connections query")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "link synthesis seed (0 keeps the configured seed)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
