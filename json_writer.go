package flip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order they are
// added in. Its zero value is ready to use, and the first error sticks.
type jsonObjectWriter struct {
	fields []jsonField
	err    error
}

type jsonField struct {
	key   string
	value json.RawMessage
}

// EmbedFrom adds the fields of v, which must marshal to a JSON object.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		w.err = fmt.Errorf("cannot embed %T: not a JSON object", v)
		return w
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			w.err = fmt.Errorf("cannot embed %T: %w", v, err)
			return w
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			w.err = fmt.Errorf("cannot embed %T: %w", v, err)
			return w
		}
		w.fields = append(w.fields, jsonField{key: tok.(string), value: value})
	}
	return w
}

// Append adds a field.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	w.fields = append(w.fields, jsonField{key: key, value: raw})
	return w
}

// Optional adds a field unless value is zero.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if isZero(value) {
		return w
	}
	return w.Append(key, value)
}

// isZero uses the IsZero method of value if any (decimals, dates), reflection otherwise.
func isZero(value any) bool {
	if z, ok := value.(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	v := reflect.ValueOf(value)
	return !v.IsValid() || v.IsZero()
}

func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range w.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		key, _ := json.Marshal(f.key)
		b.Write(key)
		b.WriteByte(':')
		b.Write(f.value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
