package definition

import (
	"bytes"
	"errors"
)

// ErrInvalidDocument is returned when a persisted document cannot be decoded
var ErrInvalidDocument = errors.New("invalid definition document")

// Document represents the canonical definition document: protocol id to protocol definition
type Document struct {
	Protocols     []*Protocol
	protocolIndex map[string]int
	members
}

// Protocol represents one protocol family subtree
type Protocol struct {
	ID       string
	Commands *GroupMap
	Events   *GroupMap
	members
	packets     members
	withPackets bool
}

// New creates an empty document
func New() *Document {
	return &Document{}
}

// Lookup returns the protocol with the given id or nil
func (d *Document) Lookup(id string) *Protocol {
	d.ensureIndex()
	if idx, ok := d.protocolIndex[id]; ok && idx < len(d.Protocols) {
		return d.Protocols[idx]
	}
	return nil
}

// LookupOrInsert returns the protocol with the given id, appending an empty one when absent
func (d *Document) LookupOrInsert(id string) (*Protocol, bool) {
	if protocol := d.Lookup(id); protocol != nil {
		return protocol, false
	}
	protocol := &Protocol{ID: id}
	d.add(protocol)
	return protocol, true
}

func (d *Document) add(protocol *Protocol) {
	d.ensureIndex()
	d.protocolIndex[protocol.ID] = len(d.Protocols)
	d.Protocols = append(d.Protocols, protocol)
}

func (d *Document) ensureIndex() {
	if d.protocolIndex != nil && len(d.protocolIndex) == len(d.Protocols) {
		return
	}
	d.protocolIndex = make(map[string]int, len(d.Protocols))
	for i, protocol := range d.Protocols {
		d.protocolIndex[protocol.ID] = i
	}
}

// Groups returns the commands or events map, creating it when absent
func (p *Protocol) Groups(kind Kind) *GroupMap {
	switch kind {
	case Commands:
		if p.Commands == nil {
			p.Commands = &GroupMap{Kind: Commands}
		}
		return p.Commands
	case Events:
		if p.Events == nil {
			p.Events = &GroupMap{Kind: Events}
		}
		return p.Events
	}
	return nil
}

// Lookup returns the commands or events map without creating it
func (p *Protocol) Lookup(kind Kind) *GroupMap {
	switch kind {
	case Commands:
		return p.Commands
	case Events:
		return p.Events
	}
	return nil
}

func (d *Document) encode(buf *bytes.Buffer) error {
	return d.members.encode(buf, []string{protocolsKey}, func(key string) ([]byte, bool, error) {
		if key != protocolsKey {
			return nil, false, nil
		}
		inner := bytes.Buffer{}
		writer := objectWriter{buf: &inner}
		writer.open()
		for _, protocol := range d.Protocols {
			value := bytes.Buffer{}
			if err := protocol.encode(&value); err != nil {
				return nil, false, err
			}
			writer.member(protocol.ID, value.Bytes())
		}
		writer.close()
		return inner.Bytes(), true, nil
	})
}

func (p *Protocol) encode(buf *bytes.Buffer) error {
	return p.members.encode(buf, []string{packetsKey}, func(key string) ([]byte, bool, error) {
		if key != packetsKey || !(p.withPackets || p.Commands != nil || p.Events != nil) {
			return nil, false, nil
		}
		inner := bytes.Buffer{}
		err := p.packets.encode(&inner, []string{string(Commands), string(Events)}, func(key string) ([]byte, bool, error) {
			groups := p.Lookup(Kind(key))
			if groups == nil {
				return nil, false, nil
			}
			value := bytes.Buffer{}
			if err := groups.encode(&value); err != nil {
				return nil, false, err
			}
			return value.Bytes(), true, nil
		})
		return inner.Bytes(), err == nil, err
	})
}
