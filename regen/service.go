package regen

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/protodef/config"
	"github.com/viant/protodef/definition"
	"github.com/viant/protodef/fingerprint"
	"github.com/viant/protodef/inspector"
	"github.com/viant/protodef/logging"
	"github.com/viant/protodef/merge"
	"github.com/viant/protodef/source"
	"golang.org/x/sync/errgroup"
)

// Options controls one regeneration run
type Options struct {
	DryRun bool
	Logger *log.Logger
}

// Description is an inspected vendor description
type Description struct {
	Source      *config.Source
	API         *source.API
	Fingerprint string
	Prefix      string // function name prefix of the console trace
}

// Result summarises one regeneration run
type Result struct {
	Document     string
	Created      bool // document did not exist before the run
	Descriptions []*Description
	Reports      []*merge.Report // in source order
	Before       string          // fingerprint of the encoded document before merging
	After        string
	Written      bool
	encoded      []byte
}

// Changed reports whether merging altered the document
func (r *Result) Changed() bool {
	return r.Created || r.Before != r.After
}

// Encoded returns the merged document
func (r *Result) Encoded() []byte {
	return r.encoded
}

// Service regenerates canonical documents from vendor descriptions
type Service struct {
	fs        afs.Service
	inspector *inspector.Factory
}

// Run loads the canonical document, merges every configured description and persists the document when it changed
func (s *Service) Run(ctx context.Context, cfg *config.Config, options *Options) (*Result, error) {
	if options == nil {
		options = &Options{}
	}
	logger := options.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	result := &Result{Document: cfg.Document}
	doc, err := s.load(ctx, cfg.Document, result)
	if err != nil {
		return nil, err
	}
	if result.Before, err = encodedFingerprint(doc); err != nil {
		return nil, err
	}
	if result.Descriptions, err = s.inspect(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if result.Reports, err = s.mergeAll(ctx, doc, cfg, result.Descriptions, logger); err != nil {
		return nil, err
	}
	if result.encoded, err = doc.Encode(); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", cfg.Document, err)
	}
	if err = definition.Check(result.encoded, cfg.Document); err != nil {
		return nil, err
	}
	if result.After, err = fingerprint.String(result.encoded); err != nil {
		return nil, err
	}
	if !result.Changed() {
		logger.Info("document unchanged", "document", cfg.Document, "fingerprint", result.After)
		return result, nil
	}
	if options.DryRun {
		logger.Info("dry run, document not written", "document", cfg.Document, "before", result.Before, "after", result.After)
		return result, nil
	}
	if err = s.fs.Upload(ctx, cfg.Document, file.DefaultFileOsMode, bytes.NewReader(result.encoded)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", cfg.Document, err)
	}
	result.Written = true
	logger.Info("document written", "document", cfg.Document, "before", result.Before, "after", result.After)
	return result, nil
}

func (s *Service) load(ctx context.Context, URL string, result *Result) (*definition.Document, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", URL, err)
	}
	if !exists {
		result.Created = true
		return definition.New(), nil
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", URL, err)
	}
	doc, err := definition.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return doc, nil
}

func (s *Service) inspect(ctx context.Context, cfg *config.Config, logger *log.Logger) ([]*Description, error) {
	descriptions := make([]*Description, len(cfg.Sources))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.ConcurrencyLimit())
	for i, item := range cfg.Sources {
		group.Go(func() error {
			api, data, err := s.inspector.InspectURL(ctx, item.URL, item.Format)
			if err != nil {
				return fmt.Errorf("protocol %s: %w", item.Protocol, err)
			}
			sum, err := fingerprint.String(data)
			if err != nil {
				return err
			}
			logger.Debug("inspected", "protocol", item.Protocol, "url", item.URL, "groups", len(api.Groups), "fingerprint", sum)
			description := &Description{Source: item, API: api, Fingerprint: sum, Prefix: prefix(item, api, data)}
			if logger.GetLevel() <= log.DebugLevel {
				if err = trace(logger, description); err != nil {
					return err
				}
			}
			descriptions[i] = description
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return descriptions, nil
}

func prefix(item *config.Source, api *source.API, data []byte) string {
	if item.Prefix != "" {
		return item.Prefix
	}
	format := item.Format
	if format == "" {
		format, _ = inspector.Detect(item.URL, data)
	}
	return inspector.DefaultPrefix(format, api)
}

// trace logs the listing of a description one line per entry
func trace(logger *log.Logger, description *Description) error {
	listing := bytes.Buffer{}
	if err := inspector.Listing(&listing, description.API, description.Prefix); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimRight(listing.String(), "\n"), "\n") {
		logger.Debug(strings.TrimSpace(line), "protocol", description.Source.Protocol)
	}
	return nil
}

// mergeAll validates every description first, then merges each protocol subtree on its own goroutine
func (s *Service) mergeAll(ctx context.Context, doc *definition.Document, cfg *config.Config, descriptions []*Description, logger *log.Logger) ([]*merge.Report, error) {
	for _, description := range descriptions {
		if err := description.API.Validate(); err != nil {
			return nil, fmt.Errorf("protocol %s: %s: %w", description.Source.Protocol, description.Source.URL, err)
		}
	}
	engine := merge.New(append(cfg.MergeOptions(), merge.WithLogger(logger))...)
	byProtocol := map[string][]int{}
	for i, description := range descriptions {
		protocolID := description.Source.Protocol
		byProtocol[protocolID] = append(byProtocol[protocolID], i)
	}
	protocolIDs := cfg.Protocols()
	protocols := make([]*definition.Protocol, len(protocolIDs))
	for i, protocolID := range protocolIDs {
		protocols[i], _ = doc.LookupOrInsert(protocolID)
	}
	reports := make([]*merge.Report, len(descriptions))
	group, ctx := errgroup.WithContext(ctx)
	for i, protocolID := range protocolIDs {
		protocol, indexes := protocols[i], byProtocol[protocolID]
		group.Go(func() error {
			for _, i := range indexes {
				if err := ctx.Err(); err != nil {
					return err
				}
				report, err := engine.MergeProtocol(protocol, descriptions[i].API)
				if err != nil {
					return err
				}
				reports[i] = report
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func encodedFingerprint(doc *definition.Document) (string, error) {
	data, err := doc.Encode()
	if err != nil {
		return "", err
	}
	return fingerprint.String(data)
}

// New creates a regeneration service, nil fs uses the default afs service
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, inspector: inspector.NewFactory(fs)}
}
