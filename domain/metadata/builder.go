package metadata

import "github.com/x-xyz/nftmeta/base/ptr"

// Builder assembles a Metadata field by field. Build may be called more
// than once; every call returns an independent copy.
type Builder struct {
	m Metadata
}

func NewBuilder(name, description, image string) *Builder {
	return &Builder{
		m: Metadata{
			Name:        name,
			Description: description,
			Image:       image,
		},
	}
}

func (b *Builder) WithExternalUrl(url string) *Builder {
	b.m.ExternalUrl = ptr.String(url)
	return b
}

func (b *Builder) WithAnimationUrl(url string) *Builder {
	b.m.AnimationUrl = ptr.String(url)
	return b
}

func (b *Builder) WithYoutubeUrl(url string) *Builder {
	b.m.YoutubeUrl = ptr.String(url)
	return b
}

func (b *Builder) WithBackgroundColor(c Color) *Builder {
	b.m.BackgroundColor = &c
	return b
}

func (b *Builder) AddAttribute(traitType string, value AttributeValue, opts ...AttributeOption) *Builder {
	b.m.Attributes = append(b.m.Attributes, NewAttribute(traitType, value, opts...))
	return b
}

func (b *Builder) Build() (*Metadata, error) {
	m := b.m.Clone()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
