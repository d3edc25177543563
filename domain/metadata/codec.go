package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// object is a decoded JSON object. Numbers are kept as json.Number so that
// integers and floats can be told apart.
type object map[string]interface{}

func parseObject(data []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			err = xerrors.New("empty payload")
		}
		return nil, malformedPayload(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = xerrors.New("unexpected data after top-level value")
		}
		return nil, malformedPayload(err)
	}

	obj, ok := root.(map[string]interface{})
	if !ok {
		return nil, typeMismatch("", "object", root)
	}
	return obj, nil
}

// lookup treats an explicit null the same as an absent key.
func (o object) lookup(key string) (interface{}, bool) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o object) requiredString(prefix, key string) (string, error) {
	path := joinPath(prefix, key)
	v, ok := o.lookup(key)
	if !ok {
		return "", missingField(path)
	}
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(path, "string", v)
	}
	return s, nil
}

func (o object) optionalString(prefix, key string) (*string, error) {
	v, ok := o.lookup(key)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, typeMismatch(joinPath(prefix, key), "string", v)
	}
	return &s, nil
}

func joinPath(prefix, key string) string {
	if len(prefix) == 0 {
		return key
	}
	return prefix + "." + key
}

func indexPath(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "bool"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

// objectWriter emits one JSON object with keys in the order they are
// written.
type objectWriter struct {
	buf *bytes.Buffer
	n   int
}

func newObjectWriter(buf *bytes.Buffer) *objectWriter {
	buf.WriteByte('{')
	return &objectWriter{buf: buf}
}

func (w *objectWriter) key(k string) {
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	w.n++
	writeString(w.buf, k)
	w.buf.WriteByte(':')
}

func (w *objectWriter) stringField(k, v string) {
	w.key(k)
	writeString(w.buf, v)
}

func (w *objectWriter) optionalStringField(k string, v *string) {
	if v != nil {
		w.stringField(k, *v)
	}
}

func (w *objectWriter) rawField(k, raw string) {
	w.key(k)
	w.buf.WriteString(raw)
}

func (w *objectWriter) close() {
	w.buf.WriteByte('}')
}

// writeString quotes s without HTML escaping; image fields regularly carry
// inline SVG data URIs.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// encoding a string cannot fail
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
