package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/protodef/definition"
)

func newAnnotateCmd() *cobra.Command {
	var (
		ref       definition.ParamRef
		kind      string
		list      string
		format    string
		shortDesc string
	)
	cmd := &cobra.Command{
		Use:   "annotate DOCUMENT",
		Short: "Set format or shortdesc of one parameter in a canonical document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref.Kind = definition.Kind(kind)
			ref.List = definition.ArgList(list)
			if err := ref.Validate(); err != nil {
				return err
			}
			changed := map[string]string{}
			if cmd.Flags().Changed("format") {
				changed["format"] = format
			}
			if cmd.Flags().Changed("shortdesc") {
				changed["shortdesc"] = shortDesc
			}
			if len(changed) == 0 {
				return errors.New("nothing to annotate: set --format or --shortdesc")
			}
			URL := args[0]
			ctx := cmd.Context()
			fs := afs.New()
			data, err := fs.DownloadWithURL(ctx, URL)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", URL, err)
			}
			for _, field := range []string{"format", "shortdesc"} {
				value, ok := changed[field]
				if !ok {
					continue
				}
				if data, err = definition.Annotate(data, ref, field, value); err != nil {
					return err
				}
			}
			if err = fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("failed to write %s: %w", URL, err)
			}
			successColor.Fprintf(cmd.OutOrStdout(), "%s annotated\n", ref)
			return nil
		},
	}
	cmd.Flags().StringVar(&ref.Protocol, "protocol", "", "protocol id")
	cmd.Flags().StringVar(&kind, "kind", string(definition.Commands), "packet kind (commands|events)")
	cmd.Flags().StringVar(&ref.Group, "group", "", "group id")
	cmd.Flags().StringVar(&ref.Entity, "entity", "", "command or event id")
	cmd.Flags().StringVar(&list, "list", string(definition.CommandArgs), "argument list (command_args|response_args|event_args)")
	cmd.Flags().IntVar(&ref.Index, "index", 0, "parameter index")
	cmd.Flags().StringVar(&format, "format", "", "parameter format")
	cmd.Flags().StringVar(&shortDesc, "shortdesc", "", "parameter short description")
	return cmd
}
