package definition

import (
	"bytes"
	"encoding/json"
)

// members keeps the member order of a decoded JSON object together with the members the model does not interpret
type members struct {
	order []string
	extra map[string]json.RawMessage
}

// Extra returns a member the model does not interpret
func (m *members) Extra(key string) (json.RawMessage, bool) {
	raw, ok := m.extra[key]
	return raw, ok
}

// SetExtra sets an uninterpreted member, appending it after existing members when new
func (m *members) SetExtra(key string, raw json.RawMessage) {
	m.record(key)
	m.setExtra(key, raw)
}

func (m *members) record(key string) {
	for _, candidate := range m.order {
		if candidate == key {
			return
		}
	}
	m.order = append(m.order, key)
}

func (m *members) setExtra(key string, raw json.RawMessage) {
	if m.extra == nil {
		m.extra = make(map[string]json.RawMessage)
	}
	m.extra[key] = raw
}

// memberFunc returns the encoded value of a member the model interprets
type memberFunc func(key string) ([]byte, bool, error)

// encode writes members in decoded order followed by interpreted members that were not decoded
func (m *members) encode(buf *bytes.Buffer, known []string, value memberFunc) error {
	writer := objectWriter{buf: buf}
	writer.open()
	seen := make(map[string]bool, len(m.order)+len(known))
	emit := func(key string) error {
		if seen[key] {
			return nil
		}
		seen[key] = true
		raw, ok, err := value(key)
		if err != nil {
			return err
		}
		if !ok {
			raw, ok = m.extra[key]
		}
		if ok {
			writer.member(key, raw)
		}
		return nil
	}
	for _, key := range m.order {
		if err := emit(key); err != nil {
			return err
		}
	}
	for _, key := range known {
		if err := emit(key); err != nil {
			return err
		}
	}
	writer.close()
	return nil
}

type objectWriter struct {
	buf   *bytes.Buffer
	count int
}

func (w *objectWriter) open() {
	w.buf.WriteByte('{')
}

func (w *objectWriter) member(key string, raw []byte) {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	w.buf.Write(quote(key))
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.count++
}

func (w *objectWriter) close() {
	w.buf.WriteByte('}')
}

// quote encodes a JSON string without HTML escaping
func quote(value string) []byte {
	buf := bytes.Buffer{}
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(value)
	return bytes.TrimRight(buf.Bytes(), "\n")
}
