package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/protodef/inspector"
)

func newInspectCmd() *cobra.Command {
	var (
		format string
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List commands, responses and events of a vendor description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := inspector.ParseFormat(format)
			if err != nil {
				return err
			}
			URL := args[0]
			data, err := afs.New().DownloadWithURL(cmd.Context(), URL)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", URL, err)
			}
			if parsed == "" {
				if parsed, err = inspector.Detect(URL, data); err != nil {
					return err
				}
			}
			api, err := inspector.NewFactory(nil).InspectSource(URL, data, parsed)
			if err != nil {
				return err
			}
			if prefix == "" {
				prefix = inspector.DefaultPrefix(parsed, api)
			}
			if err = inspector.Listing(cmd.OutOrStdout(), api, prefix); err != nil {
				return err
			}
			return api.Validate()
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "description format (bgapi|ezserial), detected when empty")
	cmd.Flags().StringVar(&prefix, "prefix", "", "function name prefix, e.g. ble, gecko or ezs")
	return cmd
}
