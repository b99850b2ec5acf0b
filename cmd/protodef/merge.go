package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/protodef/config"
	"github.com/viant/protodef/merge"
	"github.com/viant/protodef/regen"
)

func newMergeCmd() *cobra.Command {
	var (
		configURL   string
		dryRun      bool
		strict      bool
		nullParams  string
		staleParams string
	)
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge vendor descriptions into the canonical document",
		Long: `Merge loads the run configuration, inspects every configured vendor description
and merges it into the canonical document. The document is written only when it changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx, nil, configURL)
			if err != nil {
				return err
			}
			if err = cfg.ApplyEnv(nil); err != nil {
				return err
			}
			if cmd.Flags().Changed("null-params") {
				if cfg.Policy.NullParams, err = merge.ParseNullParams(nullParams); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("stale-params") {
				if cfg.Policy.StaleParams, err = merge.ParseStaleParams(staleParams); err != nil {
					return err
				}
			}
			logger, err := newLogger(cmd, &cfg.Log)
			if err != nil {
				return err
			}
			result, err := regen.New(nil).Run(ctx, cfg, &regen.Options{DryRun: dryRun, Logger: logger})
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), result, dryRun)
			if strict {
				for _, report := range result.Reports {
					if err := report.Warning(); err != nil {
						return fmt.Errorf("strict mode: %w", err)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configURL, "config", "c", "protodef.yaml", "run configuration")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "merge and check without writing the document")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when structural mismatches are reported")
	cmd.Flags().StringVar(&nullParams, "null-params", "clear", "null parameter list policy (clear|preserve)")
	cmd.Flags().StringVar(&staleParams, "stale-params", "keep", "stale parameter tail policy (keep|prune)")
	return cmd
}
