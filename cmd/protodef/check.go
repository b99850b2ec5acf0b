package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/protodef/definition"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check DOCUMENT",
		Short: "Validate a canonical document against the definition schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			URL := args[0]
			data, err := afs.New().DownloadWithURL(cmd.Context(), URL)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", URL, err)
			}
			if _, err = definition.Decode(data); err != nil {
				return fmt.Errorf("%s: %w", URL, err)
			}
			if err = definition.Check(data, URL); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "%s ok\n", URL)
			return nil
		},
	}
}
