package inspector

import (
	"bufio"
	"fmt"
	"io"

	"github.com/viant/protodef/source"
)

const (
	groupIndent  = "    "
	kindIndent   = "        "
	entityIndent = "            "
)

// DefaultPrefix returns the listing prefix used when none is configured
func DefaultPrefix(format Format, api *source.API) string {
	if format == EZSerial {
		return "ezs"
	}
	if api != nil && api.Name != "" {
		return api.Name
	}
	return string(format)
}

// Listing writes a human readable trace of api: one line per command, response and event
func Listing(w io.Writer, api *source.API, prefix string) error {
	writer := bufio.NewWriter(w)
	switch {
	case api.Device != "":
		fmt.Fprintf(writer, "%s (%s)\n", prefix, api.Device)
	case api.Name != "":
		fmt.Fprintf(writer, "%s\n", api.Name)
	default:
		fmt.Fprintf(writer, "%s\n", prefix)
	}
	for _, group := range api.Groups {
		fmt.Fprintf(writer, "%s%s: %s\n", groupIndent, group.ID, group.Name)
		if group.Commands != nil {
			fmt.Fprintf(writer, "%scommands:\n", kindIndent)
			for _, command := range group.Commands {
				ref := source.Ref(group.ID, command.ID)
				fmt.Fprintf(writer, "%s%s: %s_cmd_%s_%s(%s)\n", entityIndent, ref, prefix, group.Name, command.Name, source.Signature(command.Params))
				if !command.HasReturns {
					fmt.Fprintf(writer, "%s%s: NOTE: COMMAND HAS NO RESPONSE\n", entityIndent, ref)
					continue
				}
				fmt.Fprintf(writer, "%s%s: %s_rsp_%s_%s(%s)\n", entityIndent, ref, prefix, group.Name, command.Name, source.Signature(command.Returns))
			}
		}
		if group.Events != nil {
			fmt.Fprintf(writer, "%sevents:\n", kindIndent)
			for _, event := range group.Events {
				fmt.Fprintf(writer, "%s%s: %s_evt_%s_%s(%s)\n", entityIndent, source.Ref(group.ID, event.ID), prefix, group.Name, event.Name, source.Signature(event.Params))
			}
		}
	}
	return writer.Flush()
}
