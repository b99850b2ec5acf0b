package merge

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/viant/protodef/definition"
	"github.com/viant/protodef/source"
)

// Engine merges a normalized vendor API into a canonical document
type Engine struct {
	nullParams  NullParams
	staleParams StaleParams
	logger      *log.Logger
}

// Merge applies api to the protocol of doc. The source is validated first,
// a malformed source leaves doc untouched.
func (e *Engine) Merge(doc *definition.Document, protocolID string, api *source.API) (*Report, error) {
	if doc == nil {
		return nil, errors.New("document was nil")
	}
	if protocolID == "" {
		return nil, errors.New("protocol id was empty")
	}
	if err := validate(protocolID, api); err != nil {
		return nil, err
	}
	protocol, _ := doc.LookupOrInsert(protocolID)
	return e.merge(protocol, api), nil
}

// MergeProtocol applies api to an already resolved protocol subtree
func (e *Engine) MergeProtocol(protocol *definition.Protocol, api *source.API) (*Report, error) {
	if protocol == nil {
		return nil, errors.New("protocol was nil")
	}
	if err := validate(protocol.ID, api); err != nil {
		return nil, err
	}
	return e.merge(protocol, api), nil
}

func validate(protocolID string, api *source.API) error {
	if api == nil {
		return fmt.Errorf("protocol %s: source was nil", protocolID)
	}
	if err := api.Validate(); err != nil {
		return fmt.Errorf("protocol %s: %w", protocolID, err)
	}
	return nil
}

func (e *Engine) merge(protocol *definition.Protocol, api *source.API) *Report {
	report := &Report{Protocol: protocol.ID}
	logger := e.logger.With("protocol", protocol.ID)
	for _, group := range api.Groups {
		logger.Debug("group", "id", group.ID, "name", group.Name)
		if group.Commands != nil {
			e.mergeCommands(protocol, group, report, logger)
		}
		if group.Events != nil {
			e.mergeEvents(protocol, group, report, logger)
		}
	}
	for _, warning := range report.Warnings {
		logger.Warn(warning.Reason, "kind", warning.Kind, "ref", warning.Ref)
	}
	return report
}

func (e *Engine) mergeCommands(protocol *definition.Protocol, group *source.Group, report *Report, logger *log.Logger) {
	target, created := upsertGroup(protocol, definition.Commands, group.ID, group.Name)
	report.Groups++
	if created {
		report.CreatedGroups++
	}
	for _, command := range group.Commands {
		ref := source.Ref(group.ID, command.ID)
		entity, created := upsertEntity(target, command.ID, command.Name)
		report.Commands++
		if created {
			report.CreatedEntities++
		}
		if entity.EventArgs != nil {
			report.warn(definition.Commands, ref, "command carries event_args")
		}
		e.mergeList(report, ref, entity, definition.CommandArgs, command.Params)
		logger.Debug("command", "ref", ref, "name", group.Name+"_"+command.Name, "args", source.Signature(command.Params))
		if !command.HasReturns {
			report.NoResponse = append(report.NoResponse, ref)
			logger.Info("command has no response", "ref", ref, "name", group.Name+"_"+command.Name)
			continue
		}
		e.mergeList(report, ref, entity, definition.ResponseArgs, command.Returns)
		logger.Debug("response", "ref", ref, "name", group.Name+"_"+command.Name, "args", source.Signature(command.Returns))
	}
}

func (e *Engine) mergeEvents(protocol *definition.Protocol, group *source.Group, report *Report, logger *log.Logger) {
	target, created := upsertGroup(protocol, definition.Events, group.ID, group.Name)
	report.Groups++
	if created {
		report.CreatedGroups++
	}
	for _, event := range group.Events {
		ref := source.Ref(group.ID, event.ID)
		entity, created := upsertEntity(target, event.ID, event.Name)
		report.Events++
		if created {
			report.CreatedEntities++
		}
		if event.HasReturns {
			report.warn(definition.Events, ref, "event declares returns, ignored")
		}
		if entity.CommandArgs != nil || entity.ResponseArgs != nil {
			report.warn(definition.Events, ref, "event carries command_args or response_args")
		}
		e.mergeList(report, ref, entity, definition.EventArgs, event.Params)
		logger.Debug("event", "ref", ref, "name", group.Name+"_"+event.Name, "args", source.Signature(event.Params))
	}
}

func (e *Engine) mergeList(report *Report, ref string, entity *definition.Entity, list definition.ArgList, incoming []*source.Param) {
	merged, removed := e.MergeParamList(entity.Args(list), incoming)
	offset := len(merged)
	if len(incoming) == 0 {
		offset = 0
	}
	for i, param := range removed {
		report.Removed = append(report.Removed, RemovedParam{Ref: ref, List: list, Index: offset + i, Param: param})
	}
	entity.SetArgs(list, merged)
}

// New creates a merge engine, by default null lists clear and stale tails are kept
func New(options ...Option) *Engine {
	ret := &Engine{
		nullParams:  NullParamsClear,
		staleParams: StaleParamsKeep,
		logger:      log.New(io.Discard),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
