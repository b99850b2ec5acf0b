package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/protodef/config"
)

func newInitCmd() *cobra.Command {
	var (
		preset string
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a run configuration from a built-in preset",
		Long: fmt.Sprintf(`Init writes a run configuration for one of the built-in vendor layouts.
Available presets: %s.`, strings.Join(config.Presets(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Preset(preset)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			fs := afs.New()
			exists, err := fs.Exists(ctx, output)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", output)
			}
			if err = fs.Upload(ctx, output, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			successColor.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", output, preset)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
	cmd.Flags().StringVarP(&output, "output", "o", "protodef.yaml", "configuration location")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration")
	_ = cmd.MarkFlagRequired("preset")
	return cmd
}
