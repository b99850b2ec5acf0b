package inspector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/protodef/inspector/bgapi"
	"github.com/viant/protodef/inspector/ezserial"
	"github.com/viant/protodef/source"
)

// Format identifies a vendor description format
type Format string

const (
	// BGAPI is the Silicon Labs / Bluegiga XML API description
	BGAPI Format = "bgapi"
	// EZSerial is the Cypress EZ-Serial JSON API description
	EZSerial Format = "ezserial"
)

// ErrUnsupportedFormat is returned for formats without an inspector
var ErrUnsupportedFormat = errors.New("unsupported format")

// Inspector provides an interface for inspecting vendor descriptions
type Inspector interface {
	// InspectSource parses a vendor description and normalizes it
	InspectSource(src []byte) (*source.API, error)
}

// Factory creates appropriate inspectors based on format
type Factory struct {
	fs afs.Service
}

// NewFactory creates a new inspector factory, nil fs uses the default afs service
func NewFactory(fs afs.Service) *Factory {
	if fs == nil {
		fs = afs.New()
	}
	return &Factory{fs: fs}
}

// ParseFormat parses a format name, empty means detect
func ParseFormat(name string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(name))); format {
	case "", BGAPI, EZSerial:
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// GetInspector returns an appropriate inspector for the format
func (f *Factory) GetInspector(format Format) (Inspector, error) {
	switch format {
	case BGAPI:
		return bgapi.NewInspector(), nil
	case EZSerial:
		return ezserial.NewInspector(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Detect picks the format by file extension, falling back to the first significant byte
func Detect(filename string, src []byte) (Format, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".xml":
		return BGAPI, nil
	case ".json":
		return EZSerial, nil
	}
	trimmed := bytes.TrimSpace(src)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '<':
			return BGAPI, nil
		case '{':
			return EZSerial, nil
		}
	}
	return "", fmt.Errorf("%w: unable to detect format of %s", ErrUnsupportedFormat, filename)
}

// InspectSource is a convenience method that detects the format when empty and inspects src
func (f *Factory) InspectSource(filename string, src []byte, format Format) (*source.API, error) {
	if format == "" {
		detected, err := Detect(filename, src)
		if err != nil {
			return nil, err
		}
		format = detected
	}
	inspector, err := f.GetInspector(format)
	if err != nil {
		return nil, err
	}
	api, err := inspector.InspectSource(src)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", filename, err)
	}
	return api, nil
}

// InspectURL downloads a vendor description and inspects it, returning the raw description alongside
func (f *Factory) InspectURL(ctx context.Context, URL string, format Format) (*source.API, []byte, error) {
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	api, err := f.InspectSource(URL, data, format)
	if err != nil {
		return nil, nil, err
	}
	return api, data, nil
}
