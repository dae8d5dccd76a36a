package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	"github.com/Vagvedi/gitrekt/internal/core/version"
	"github.com/Vagvedi/gitrekt/internal/platform/config"
	"github.com/Vagvedi/gitrekt/internal/services/roast/domain"
	roastmod "github.com/Vagvedi/gitrekt/internal/services/roast/module"
)

// analyzer is the slice of the roast workflow the CLI drives
type analyzer interface {
	Analyze(ctx context.Context, in domain.AnalyzeInput) (roast.Report, error)
}

// newAnalyzer is a seam so tests run without GitHub
// the CLI is one shot so it skips the cache
var newAnalyzer = func(o roastmod.Options) analyzer {
	return roastmod.NewService(o, nil)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gitrekt",
		Short:         "Roast a GitHub user from their public activity",
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRoastCmd(), newRulesCmd())
	return root
}

type roastFlags struct {
	json        bool
	forceColor  bool
	concurrency int
	timeout     time.Duration
}

func newRoastCmd() *cobra.Command {
	var f roastFlags
	cmd := &cobra.Command{
		Use:   "roast <username>",
		Short: "Fetch, measure and roast one GitHub user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.forceColor {
				color.NoColor = false
			}

			o := roastmod.FromConfig(config.New())
			if f.concurrency > 0 {
				o.Service.Concurrency = f.concurrency
			}
			if f.timeout > 0 {
				o.Service.Timeout = f.timeout
			}

			rep, err := newAnalyzer(o).Analyze(cmd.Context(), domain.AnalyzeInput{
				Username:        args[0],
				IncludeAnalysis: f.json,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return renderReport(out, rep)
		},
	}
	cmd.Flags().BoolVar(&f.json, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&f.forceColor, "force-color", false, "colour output even when stdout is not a terminal")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "parallel repository fetches (default ANALYSIS_CONCURRENCY or 8)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "analysis deadline (default ANALYSIS_TIMEOUT_MS or 30s)")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the roast rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, r := range roast.DefaultRules() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, r.ID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
