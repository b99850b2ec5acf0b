package bgapi

import (
	"encoding/xml"

	"github.com/viant/protodef/source"
)

type (
	api struct {
		XMLName    xml.Name `xml:"api"`
		DeviceID   string   `xml:"device_id,attr"`
		DeviceName string   `xml:"device_name,attr"`
		Classes    []class  `xml:"class"`
	}

	class struct {
		Index    string   `xml:"index,attr"`
		Name     string   `xml:"name,attr"`
		Commands []entity `xml:"command"`
		Events   []entity `xml:"event"`
	}

	entity struct {
		Index   string  `xml:"index,attr"`
		Name    string  `xml:"name,attr"`
		Params  *params `xml:"params"`
		Returns *params `xml:"returns"`
	}

	params struct {
		Params []param `xml:"param"`
	}

	param struct {
		Name   string `xml:"name,attr"`
		Type   string `xml:"type,attr"`
		Format string `xml:"format,attr"`
	}
)

func (e *entity) entity() *source.Entity {
	ret := &source.Entity{
		ID:     source.CanonicalID(e.Index),
		Name:   e.Name,
		Params: e.Params.params(),
	}
	if e.Returns != nil {
		ret.HasReturns = true
		ret.Returns = e.Returns.params()
	}
	return ret
}

// params returns nil for an absent or empty element
func (p *params) params() []*source.Param {
	if p == nil || len(p.Params) == 0 {
		return nil
	}
	ret := make([]*source.Param, 0, len(p.Params))
	for _, item := range p.Params {
		projected := &source.Param{Name: item.Name, Type: item.Type}
		if item.Format != "" {
			format := item.Format
			projected.Format = &format
		}
		ret = append(ret, projected)
	}
	return ret
}
