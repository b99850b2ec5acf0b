package merge_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"github.com/viant/protodef/definition"
	"github.com/viant/protodef/merge"
	"github.com/viant/protodef/source"
)

func stringPtr(s string) *string {
	return &s
}

func param(name, typ string) *source.Param {
	return &source.Param{Name: name, Type: typ}
}

func decode(t *testing.T, data string) *definition.Document {
	doc, err := definition.Decode([]byte(data))
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	return doc
}

func encode(t *testing.T, doc *definition.Document) []byte {
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	return data
}

func sampleAPI() *source.API {
	return &source.API{
		Name: "sample",
		Groups: []*source.Group{
			{
				ID:   "0",
				Name: "system",
				Commands: []*source.Entity{
					{ID: "0", Name: "reset", Params: []*source.Param{param("boot_in_dfu", "uint8")}},
					{ID: "1", Name: "hello", HasReturns: true},
					{ID: "2", Name: "get_info", HasReturns: true, Returns: []*source.Param{param("major", "uint16"), param("minor", "uint16")}},
				},
				Events: []*source.Entity{
					{ID: "0", Name: "boot", Params: []*source.Param{param("major", "uint16")}},
				},
			},
			{
				ID:     "1",
				Name:   "gap",
				Events: []*source.Entity{},
			},
		},
	}
}

func TestEngine_Merge_Idempotence(t *testing.T) {
	tests := []struct {
		description string
		document    string
		options     []merge.Option
	}{
		{description: "empty document", document: `{"protocols": {}}`},
		{description: "curated document", document: `{"protocols": {"p": {"packets": {"commands": {"0": {"name": "old", "note": 1, "2": {"name": "get_info", "response_args": [{"name": "a", "type": "uint8", "format": "hex"}, {"name": "b", "type": "uint8"}, {"name": "c", "type": "uint8"}]}}}}}}}`},
		{description: "prune policy", document: `{"protocols": {"p": {"packets": {"commands": {"0": {"name": "old", "2": {"name": "get_info", "response_args": [{"name": "a", "type": "uint8"}, {"name": "b", "type": "uint8"}, {"name": "c", "type": "uint8"}]}}}}}}}`, options: []merge.Option{merge.WithStaleParams(merge.StaleParamsPrune)}},
		{description: "preserve policy", document: `{"protocols": {"p": {"packets": {"commands": {"0": {"name": "system", "1": {"name": "hello", "command_args": [{"name": "x", "type": "uint8"}]}}}}}}}`, options: []merge.Option{merge.WithNullParams(merge.NullParamsPreserve)}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			engine := merge.New(tt.options...)
			doc := decode(t, tt.document)
			_, err := engine.Merge(doc, "p", sampleAPI())
			if !assert.NoError(t, err) {
				return
			}
			once := encode(t, doc)
			_, err = engine.Merge(doc, "p", sampleAPI())
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, string(once), string(encode(t, doc)))

			again := decode(t, string(once))
			_, err = engine.Merge(again, "p", sampleAPI())
			assert.NoError(t, err)
			assert.Equal(t, string(once), string(encode(t, again)))
		})
	}
}

func TestEngine_Merge_WorkedExample(t *testing.T) {
	doc := decode(t, `{"protocols": {"p": {"packets": {"commands": {"1": {"name": "Foo", "2": {"name": "Foo", "command_args": [{"name": "x", "type": "uint8", "shortdesc": "desc"}]}}}}}}}`)
	api := &source.API{Groups: []*source.Group{{
		ID:       "1",
		Name:     "Foo2",
		Commands: []*source.Entity{{ID: "2", Name: "Foo", Params: []*source.Param{param("x", "uint8")}}},
	}}}
	report, err := merge.New().Merge(doc, "p", api)
	if !assert.NoError(t, err) {
		return
	}
	expect := `{"protocols": {"p": {"packets": {"commands": {"1": {"name": "Foo2", "2": {"name": "Foo", "command_args": [{"name": "x", "type": "uint8", "shortdesc": "desc"}]}}}}}}}`
	assert.JSONEq(t, expect, string(encode(t, doc)))
	assert.Equal(t, []string{"1/2"}, report.NoResponse)
	assert.Equal(t, 0, report.CreatedGroups)
	assert.Equal(t, 0, report.CreatedEntities)
}

func TestEngine_Merge_NonDestructiveAnnotation(t *testing.T) {
	doc := decode(t, `{"protocols": {"p": {"packets": {"events": {"0": {"name": "system", "0": {"name": "boot", "event_args": [{"name": "version", "type": "uint8", "format": "hex", "note": "keep"}]}}}}}}}`)
	_, err := merge.New().Merge(doc, "p", sampleAPI())
	if !assert.NoError(t, err) {
		return
	}
	arg := gjson.GetBytes(encode(t, doc), "protocols.p.packets.events.0.0.event_args.0")
	assert.Equal(t, "major", arg.Get("name").String())
	assert.Equal(t, "uint16", arg.Get("type").String())
	assert.Equal(t, "hex", arg.Get("format").String())
	assert.Equal(t, "keep", arg.Get("note").String())
}

func TestEngine_Merge_KeepsHandAddedGroupMembers(t *testing.T) {
	document := `{"protocols": {"p": {"packets": {"commands": {"1": {"name": "g", "notes": {"author": "x"}, "2": {"name": "e"}, "3": {"command_args": [{"comment": "todo"}]}}}}}}}`
	doc := decode(t, document)
	api := &source.API{Groups: []*source.Group{{
		ID:       "1",
		Name:     "g",
		Commands: []*source.Entity{{ID: "2", Name: "e", Params: []*source.Param{param("x", "uint8")}, HasReturns: true, Returns: []*source.Param{param("r", "uint16")}}},
	}}}
	_, err := merge.New().Merge(doc, "p", api)
	if !assert.NoError(t, err) {
		return
	}
	encoded := encode(t, doc)
	assert.JSONEq(t, `{"protocols": {"p": {"packets": {"commands": {"1": {"name": "g", "notes": {"author": "x"}, "2": {"name": "e", "command_args": [{"name": "x", "type": "uint8"}], "response_args": [{"name": "r", "type": "uint16"}]}, "3": {"command_args": [{"comment": "todo"}]}}}}}}}`, string(encoded))
	err = definition.Check(encoded, "")
	assert.True(t, errors.Is(err, definition.ErrSchema), "%v", err)
}

func TestEngine_MergeParamList(t *testing.T) {
	existing := func() []*definition.Param {
		return []*definition.Param{
			{Name: "a", Type: "uint8", Format: stringPtr("hex")},
			{Name: "b", Type: "uint16"},
			{Name: "c", Type: "uint32", ShortDesc: stringPtr("tail")},
		}
	}
	tests := []struct {
		description string
		options     []merge.Option
		existing    []*definition.Param
		incoming    []*source.Param
		expectNames []string
		expectNil   bool
		removed     int
	}{
		{description: "growth without truncation", existing: existing(), incoming: []*source.Param{param("z", "uint8")}, expectNames: []string{"z", "b", "c"}},
		{description: "extend", existing: existing()[:1], incoming: []*source.Param{param("a", "uint8"), param("b", "uint8")}, expectNames: []string{"a", "b"}},
		{description: "nil existing", incoming: []*source.Param{param("a", "uint8")}, expectNames: []string{"a"}},
		{description: "prune stale tail", options: []merge.Option{merge.WithStaleParams(merge.StaleParamsPrune)}, existing: existing(), incoming: []*source.Param{param("z", "uint8")}, expectNames: []string{"z"}, removed: 2},
		{description: "null clears", existing: existing(), incoming: nil, expectNames: []string{}, removed: 3},
		{description: "empty clears", existing: existing(), incoming: []*source.Param{}, expectNames: []string{}, removed: 3},
		{description: "null on absent list", incoming: nil, expectNames: []string{}},
		{description: "null preserved", options: []merge.Option{merge.WithNullParams(merge.NullParamsPreserve)}, existing: existing(), expectNames: []string{"a", "b", "c"}},
		{description: "null preserve on absent list", options: []merge.Option{merge.WithNullParams(merge.NullParamsPreserve)}, expectNames: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			actual, removed := merge.New(tt.options...).MergeParamList(tt.existing, tt.incoming)
			if !assert.NotNil(t, actual) {
				return
			}
			var names = make([]string, 0, len(actual))
			for _, item := range actual {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.expectNames, names)
			assert.Len(t, removed, tt.removed)
		})
	}
}

func TestEngine_MergeParamList_KeepsCuratedMembers(t *testing.T) {
	existing := []*definition.Param{
		{Name: "a", Type: "uint8", Format: stringPtr("hex")},
		{Name: "b", Type: "uint16", ShortDesc: stringPtr("second")},
	}
	incoming := []*source.Param{
		{Name: "a", Type: "uint16"},
		{Name: "b", Type: "uint16", Format: stringPtr("dec")},
	}
	actual, removed := merge.New().MergeParamList(existing, incoming)
	assert.Nil(t, removed)
	if !assert.Len(t, actual, 2) {
		return
	}
	assert.Same(t, existing[0], actual[0])
	assert.Equal(t, "uint16", actual[0].Type)
	assert.Equal(t, "hex", *actual[0].Format)
	assert.Nil(t, actual[0].ShortDesc)
	assert.Equal(t, "dec", *actual[1].Format)
	assert.Equal(t, "second", *actual[1].ShortDesc)
}

func TestEngine_Merge_NoResponse(t *testing.T) {
	doc := definition.New()
	report, err := merge.New().Merge(doc, "p", sampleAPI())
	if !assert.NoError(t, err) {
		return
	}
	data := encode(t, doc)
	assert.False(t, gjson.GetBytes(data, "protocols.p.packets.commands.0.0.response_args").Exists())
	assert.JSONEq(t, `[]`, gjson.GetBytes(data, "protocols.p.packets.commands.0.1.response_args").Raw)
	assert.JSONEq(t, `[]`, gjson.GetBytes(data, "protocols.p.packets.commands.0.1.command_args").Raw)
	assert.Equal(t, 2, int(gjson.GetBytes(data, "protocols.p.packets.commands.0.2.response_args.#").Int()))
	assert.Equal(t, []string{"0/0"}, report.NoResponse)
}

func TestEngine_Merge_Report(t *testing.T) {
	doc := decode(t, `{"protocols": {"p": {"packets": {"commands": {"0": {"name": "system", "0": {"name": "reset"}}}}}}}`)
	report, err := merge.New().Merge(doc, "p", sampleAPI())
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "p", report.Protocol)
	assert.Equal(t, 3, report.Groups)
	assert.Equal(t, 2, report.CreatedGroups)
	assert.Equal(t, 3, report.Commands)
	assert.Equal(t, 1, report.Events)
	assert.Equal(t, 3, report.CreatedEntities)
	assert.NoError(t, report.Warning())

	data := encode(t, doc)
	assert.JSONEq(t, `{"name": "gap"}`, gjson.GetBytes(data, "protocols.p.packets.events.1").Raw)
	assert.False(t, gjson.GetBytes(data, "protocols.p.packets.commands.1").Exists())
}

func TestEngine_Merge_GroupNameCorrection(t *testing.T) {
	doc := decode(t, `{"protocols": {"p": {"packets": {"events": {"0": {"name": "Old", "5": {"name": "custom", "event_args": []}}}}}}}`)
	api := &source.API{Groups: []*source.Group{{ID: "0", Name: "New", Events: []*source.Entity{}}}}
	_, err := merge.New().Merge(doc, "p", api)
	if !assert.NoError(t, err) {
		return
	}
	assert.JSONEq(t, `{"name": "New", "5": {"name": "custom", "event_args": []}}`, gjson.GetBytes(encode(t, doc), "protocols.p.packets.events.0").Raw)
}

func TestEngine_Merge_StaleTailPruneReport(t *testing.T) {
	doc := decode(t, `{"protocols": {"p": {"packets": {"events": {"0": {"name": "system", "0": {"name": "boot", "event_args": [{"name": "major", "type": "uint16"}, {"name": "minor", "type": "uint16"}]}}}}}}}`)
	report, err := merge.New(merge.WithStaleParams(merge.StaleParamsPrune)).Merge(doc, "p", sampleAPI())
	if !assert.NoError(t, err) {
		return
	}
	if assert.Len(t, report.Removed, 1) {
		removed := report.Removed[0]
		assert.Equal(t, "0/0", removed.Ref)
		assert.Equal(t, definition.EventArgs, removed.List)
		assert.Equal(t, 1, removed.Index)
		assert.Equal(t, "minor", removed.Param.Name)
	}
	assert.Equal(t, 1, int(gjson.GetBytes(encode(t, doc), "protocols.p.packets.events.0.0.event_args.#").Int()))
}

func TestEngine_Merge_StructuralMismatch(t *testing.T) {
	doc := decode(t, `{"protocols": {"p": {"packets": {"events": {"0": {"name": "system", "0": {"name": "boot", "command_args": []}}}}}}}`)
	api := &source.API{Groups: []*source.Group{{
		ID:     "0",
		Name:   "system",
		Events: []*source.Entity{{ID: "0", Name: "boot", HasReturns: true, Returns: []*source.Param{param("r", "uint8")}}},
	}}}
	buffer := &bytes.Buffer{}
	logger := log.New(buffer)
	report, err := merge.New(merge.WithLogger(logger)).Merge(doc, "p", api)
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, report.Warnings, 2)
	warning := report.Warning()
	assert.True(t, errors.Is(warning, merge.ErrStructuralMismatch))
	var mismatch *merge.StructuralMismatch
	if assert.True(t, errors.As(warning, &mismatch)) {
		assert.Equal(t, "0/0", mismatch.Ref)
		assert.Equal(t, definition.Events, mismatch.Kind)
	}
	entity := gjson.GetBytes(encode(t, doc), "protocols.p.packets.events.0.0")
	assert.False(t, entity.Get("response_args").Exists())
	assert.True(t, entity.Get("command_args").Exists())
	assert.JSONEq(t, `[]`, entity.Get("event_args").Raw)
	assert.True(t, strings.Contains(buffer.String(), "event declares returns"))
}

func TestEngine_Merge_MalformedSource(t *testing.T) {
	input := `{"protocols": {"p": {"packets": {"commands": {"0": {"name": "system"}}}}}}`
	doc := decode(t, input)
	before := encode(t, doc)
	api := sampleAPI()
	api.Groups = append(api.Groups, &source.Group{ID: "2", Name: "broken", Commands: []*source.Entity{{ID: "0", Name: "x", Params: []*source.Param{{Name: "a"}}}}})
	report, err := merge.New().Merge(doc, "p", api)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, source.ErrMalformed), "%v", err)
	assert.Equal(t, string(before), string(encode(t, doc)))
}

func TestUpsert(t *testing.T) {
	doc := definition.New()
	group := merge.UpsertGroup(doc, "p", definition.Commands, "3", "flash")
	entity := merge.UpsertEntity(group, "7", "erase")
	entity.CommandArgs = []*definition.Param{{Name: "page", Type: "uint8"}}

	same := merge.UpsertGroup(doc, "p", definition.Commands, "3", "flash2")
	assert.Same(t, group, same)
	assert.Equal(t, "flash2", same.Name)
	again := merge.UpsertEntity(same, "7", "erase_page")
	assert.Same(t, entity, again)
	assert.Equal(t, "erase_page", again.Name)
	assert.Len(t, again.CommandArgs, 1)
}

func TestParsePolicies(t *testing.T) {
	nullParams, err := merge.ParseNullParams("Preserve")
	assert.NoError(t, err)
	assert.Equal(t, merge.NullParamsPreserve, nullParams)
	_, err = merge.ParseNullParams("drop")
	assert.Error(t, err)

	var staleParams merge.StaleParams
	assert.NoError(t, staleParams.UnmarshalText([]byte("prune")))
	assert.Equal(t, merge.StaleParamsPrune, staleParams)
	text, err := staleParams.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "prune", string(text))
	assert.Error(t, staleParams.UnmarshalText([]byte("delete")))
}
