package main

import (
	"context"
	"fmt"
	"io"

	"socialgraph/application/queries"
	"socialgraph/infrastructure/config"
	"socialgraph/infrastructure/di"

	"github.com/spf13/cobra"
)

// analyzeOptions selects what the analyze command prints
type analyzeOptions struct {
	First  string
	Second string
	Seed   int64
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Logger.Sync()

	return analyze(cmd.Context(), cmd.OutOrStdout(), container, analyzeOptions{
		First:  analyzeFirst,
		Second: analyzeSecond,
		Seed:   analyzeSeed,
	})
}

// analyze builds the graph once and prints the mutual (when both names are given),
// communities and most influential results.
func analyze(ctx context.Context, out io.Writer, container *di.Container, opts analyzeOptions) error {
	if _, err := container.Loader.Build(ctx, opts.Seed); err != nil {
		return fmt.Errorf("fetch people data: %w", err)
	}

	if opts.First != "" && opts.Second != "" {
		result, err := container.QueryBus.Ask(ctx, queries.MutualConnectionsQuery{First: opts.First, Second: opts.Second})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result.(*queries.MutualConnectionsResult).Text)
	}

	result, err := container.QueryBus.Ask(ctx, queries.DetectCommunitiesQuery{})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.(*queries.DetectCommunitiesResult).Text)

	result, err = container.QueryBus.Ask(ctx, queries.MostInfluentialQuery{})
	if err != nil {
		return err
	}
	influential := result.(*queries.MostInfluentialResult)
	fmt.Fprintf(out, "Most influential character: %s\n%s\n", influential.Title, influential.Subtitle)

	return nil
}
