package definition

import (
	"bytes"

	"github.com/tidwall/pretty"
)

// indentOptions reproduce json.dump(indent=4): four spaces, arrays never folded onto one line
var indentOptions = &pretty.Options{Indent: "    ", Width: 0}

// Encode renders the document preserving member order
func (d *Document) Encode() ([]byte, error) {
	buf := bytes.Buffer{}
	if err := d.encode(&buf); err != nil {
		return nil, err
	}
	return Indent(buf.Bytes()), nil
}

// Indent re-indents a JSON document the way Encode does
func Indent(data []byte) []byte {
	return pretty.PrettyOptions(data, indentOptions)
}
