package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"open-cluster-management.io/retirement/pkg/cluster"
	"open-cluster-management.io/retirement/pkg/scoring"
)

// NewRetirementCommand builds the retirement CLI: a thin orchestration layer
// over the filtering, eligibility and scoring engine. The engine itself stays
// a pure function of (clusters, configuration).
func NewRetirementCommand() *cobra.Command {
	options := &Options{}

	cmd := &cobra.Command{
		Use:          "retirement",
		Short:        "Rank compute clusters for retirement",
		SilenceUsage: true,
	}
	options.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newRankCommand(options),
		newExplainCommand(options),
		newEligibleCommand(options),
		newFilterCommand(options),
		newCatalogCommand(),
		newFieldsCommand(),
	)
	return cmd
}

func newRankCommand(options *Options) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Filter, gate and score the inventory, highest retirement suitability first",
		RunE: func(cmd *cobra.Command, args []string) error {
			clusters, err := options.LoadClusters()
			if err != nil {
				return err
			}
			config, err := options.LoadConfig()
			if err != nil {
				return err
			}

			population, rejections := config.Narrow(clusters)
			result := scoring.ScoreAll(population, config.Weights, config.Options)

			rankings := result.Rankings
			if top > 0 && top < len(rankings) {
				rankings = rankings[:top]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tCLUSTER\tSCORE\tTOP FACTORS")
			for i, b := range rankings {
				fmt.Fprintf(w, "%d\t%s\t%.4f\t%s\n", i+1, b.Identity, b.Score, topFactors(b, 3))
			}
			w.Flush()

			if len(rejections) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d cluster(s) ineligible; run 'retirement eligible' for reasons\n", len(rejections))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "Only print the first N rankings.")
	return cmd
}

// topFactors names the n largest contributions of a breakdown.
func topFactors(b scoring.Breakdown, n int) string {
	factors := make([]scoring.FactorContribution, len(b.Factors))
	copy(factors, b.Factors)
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Contribution > factors[j].Contribution
	})
	if n > len(factors) {
		n = len(factors)
	}
	names := make([]string, 0, n)
	for _, f := range factors[:n] {
		names = append(names, f.Feature)
	}
	return strings.Join(names, ", ")
}

func newExplainCommand(options *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain CLUSTER",
		Short: "Print the full factor breakdown for one cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clusters, err := options.LoadClusters()
			if err != nil {
				return err
			}
			config, err := options.LoadConfig()
			if err != nil {
				return err
			}

			population, _ := config.Narrow(clusters)
			breakdown, err := scoring.Explain(population, args[0], config.Weights, config.Options)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.4f\n\n", breakdown.Identity, breakdown.Score)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FACTOR\tRAW\tNORMALIZED\tWEIGHT\tCONTRIBUTION\tINVERTED\tRANGE")
			for _, f := range breakdown.Factors {
				raw := "unknown"
				if f.Raw != nil {
					raw = fmt.Sprintf("%.4f", *f.Raw)
				}
				fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.4f\t%t\t[%.4f, %.4f]\n",
					f.Feature, raw, f.Normalized, f.Weight, f.Contribution, f.Inverted, f.Min, f.Max)
			}
			w.Flush()
			return nil
		},
	}
	return cmd
}

func newEligibleCommand(options *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "Report the eligibility gate decision and reasons for every cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			clusters, err := options.LoadClusters()
			if err != nil {
				return err
			}
			config, err := options.LoadConfig()
			if err != nil {
				return err
			}
			if config.Rules == nil {
				return fmt.Errorf("config file defines no eligibility rules")
			}

			passing, rejections := config.Narrow(clusters)
			for _, c := range passing {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: eligible\n", c.Identity())
			}
			for _, r := range rejections {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ineligible\n", r.Identity)
				for _, reason := range r.Reasons {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", reason)
				}
			}
			return nil
		},
	}
	return cmd
}

func newFilterCommand(options *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Apply the configured criteria or plan and list the matching clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			clusters, err := options.LoadClusters()
			if err != nil {
				return err
			}
			config, err := options.LoadConfig()
			if err != nil {
				return err
			}

			// the filter surface skips the gate on purpose
			config.Rules = nil
			population, _ := config.Narrow(clusters)
			for _, c := range population {
				fmt.Fprintln(cmd.OutOrStdout(), c.Identity())
			}
			return nil
		},
	}
	return cmd
}

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every scorable feature with kind, unit and direction",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FEATURE\tKIND\tUNIT\tDIRECTION")
			for _, f := range scoring.Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Kind, f.Unit, f.Direction)
			}
			return w.Flush()
		},
	}
}

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List every filterable attribute with its kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tKIND")
			for _, f := range cluster.ListFields() {
				fmt.Fprintf(w, "%s\t%s\n", f.Name, f.Kind)
			}
			return w.Flush()
		},
	}
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRetirementCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
