// Package metadata models NFT token metadata in the shape popularised by
// OpenSea (https://docs.opensea.io/docs/metadata-standards), which is what
// secondary markets read in practice, rather than the "ERC-721 Metadata JSON
// Schema" from EIP-721.
//
// Only structural correctness is checked. Whether an image URL resolves or
// a trait value makes sense for a collection is up to the caller.
package metadata

import (
	"bytes"
)

// Metadata is the document a token URI resolves to. Optional fields are nil
// when absent; Attributes is nil when the key is absent and empty when it
// was present with no entries.
type Metadata struct {
	Name            string
	Description     string
	Image           string
	ExternalUrl     *string
	AnimationUrl    *string
	YoutubeUrl      *string
	BackgroundColor *Color
	Attributes      []AttributeEntry
}

// Deserialize parses a metadata payload. Unknown keys are ignored. Failures
// are reported as *SchemaError.
func Deserialize(data []byte) (*Metadata, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeMetadata(obj)
}

// Serialize writes m with only its populated fields, in the conventional
// key order. It fails only if m is structurally invalid, which cannot
// happen for documents built with Builder or returned by Deserialize.
func Serialize(m *Metadata) ([]byte, error) {
	if m == nil {
		return nil, &SchemaError{Kind: TypeMismatch, Err: errNilDocument}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	m.encode(&buf)
	return buf.Bytes(), nil
}

// Validate checks structural constraints only.
func (m *Metadata) Validate() error {
	if m == nil {
		return &SchemaError{Kind: TypeMismatch, Err: errNilDocument}
	}
	for i, attr := range m.Attributes {
		if err := attr.validate(indexPath("attributes", i)); err != nil {
			return err
		}
	}
	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	return Serialize(&m)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	decoded, err := Deserialize(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// Clone returns a deep copy of m.
func (m *Metadata) Clone() *Metadata {
	c := *m
	c.ExternalUrl = cloneString(m.ExternalUrl)
	c.AnimationUrl = cloneString(m.AnimationUrl)
	c.YoutubeUrl = cloneString(m.YoutubeUrl)
	if m.BackgroundColor != nil {
		color := *m.BackgroundColor
		c.BackgroundColor = &color
	}
	if m.Attributes != nil {
		c.Attributes = make([]AttributeEntry, len(m.Attributes))
		for i, attr := range m.Attributes {
			c.Attributes[i] = attr.clone()
		}
	}
	return &c
}

func decodeMetadata(obj object) (*Metadata, error) {
	var (
		m   Metadata
		err error
	)
	if m.Name, err = obj.requiredString("", "name"); err != nil {
		return nil, err
	}
	if m.Description, err = obj.requiredString("", "description"); err != nil {
		return nil, err
	}
	if m.Image, err = obj.requiredString("", "image"); err != nil {
		return nil, err
	}
	if m.ExternalUrl, err = obj.optionalString("", "external_url"); err != nil {
		return nil, err
	}
	if m.AnimationUrl, err = obj.optionalString("", "animation_url"); err != nil {
		return nil, err
	}
	if m.YoutubeUrl, err = obj.optionalString("", "youtube_url"); err != nil {
		return nil, err
	}

	color, err := obj.optionalString("", "background_color")
	if err != nil {
		return nil, err
	}
	if color != nil {
		c, err := ParseColor(*color)
		if err != nil {
			return nil, &SchemaError{Kind: TypeMismatch, Field: "background_color", Err: err}
		}
		m.BackgroundColor = &c
	}

	if raw, ok := obj.lookup("attributes"); ok {
		if m.Attributes, err = decodeAttributes("attributes", raw); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (m *Metadata) encode(buf *bytes.Buffer) {
	w := newObjectWriter(buf)
	w.stringField("name", m.Name)
	w.stringField("description", m.Description)
	w.stringField("image", m.Image)
	w.optionalStringField("external_url", m.ExternalUrl)
	w.optionalStringField("animation_url", m.AnimationUrl)
	w.optionalStringField("youtube_url", m.YoutubeUrl)
	if m.BackgroundColor != nil {
		w.stringField("background_color", m.BackgroundColor.String())
	}
	if m.Attributes != nil {
		w.key("attributes")
		buf.WriteByte('[')
		for i, attr := range m.Attributes {
			if i > 0 {
				buf.WriteByte(',')
			}
			aw := newObjectWriter(buf)
			attr.encode(aw)
			aw.close()
		}
		buf.WriteByte(']')
	}
	w.close()
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
