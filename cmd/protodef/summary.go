package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/viant/protodef/regen"
)

var (
	protocolColor = color.New(color.Bold)
	noticeColor   = color.New(color.FgCyan)
	warningColor  = color.New(color.FgYellow)
	removedColor  = color.New(color.FgRed)
	successColor  = color.New(color.FgGreen, color.Bold)
	errorColor    = color.New(color.FgRed, color.Bold)
)

func printSummary(w io.Writer, result *regen.Result, dryRun bool) {
	for i, report := range result.Reports {
		description := result.Descriptions[i]
		protocolColor.Fprintf(w, "%s", report.Protocol)
		fmt.Fprintf(w, " <- %s (%s)\n", description.Source.URL, description.Fingerprint)
		fmt.Fprintf(w, "  groups: %d (%d new), commands: %d, events: %d, new entities: %d\n",
			report.Groups, report.CreatedGroups, report.Commands, report.Events, report.CreatedEntities)
		if len(report.NoResponse) > 0 {
			noticeColor.Fprintf(w, "  %d commands have no response: %v\n", len(report.NoResponse), report.NoResponse)
		}
		for _, warning := range report.Warnings {
			warningColor.Fprintf(w, "  warning: %s %s: %s\n", warning.Kind, warning.Ref, warning.Reason)
		}
		for _, removed := range report.Removed {
			removedColor.Fprintf(w, "  removed: %s %s[%d] %s %s\n", removed.Ref, removed.List, removed.Index, removed.Param.Type, removed.Param.Name)
		}
	}
	switch {
	case !result.Changed():
		successColor.Fprintf(w, "%s unchanged (%s)\n", result.Document, result.After)
	case dryRun:
		noticeColor.Fprintf(w, "%s would change (%s -> %s), dry run\n", result.Document, result.Before, result.After)
	case result.Written:
		successColor.Fprintf(w, "%s written (%s -> %s)\n", result.Document, result.Before, result.After)
	}
}

func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "error: ")
	fmt.Fprintln(w, err)
}
