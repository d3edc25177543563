package metadata

import "golang.org/x/xerrors"

var errNumericMaxValue = xerrors.New("max_value must be an integer or a float")

// DisplayType hints how a marketplace renders a numeric trait. Values other
// than the constants below are kept as-is.
type DisplayType string

const (
	DisplayTypeNumber          DisplayType = "number"
	DisplayTypeBoostNumber     DisplayType = "boost_number"
	DisplayTypeBoostPercentage DisplayType = "boost_percentage"
	DisplayTypeDate            DisplayType = "date"
)

func (d DisplayType) IsKnown() bool {
	switch d {
	case DisplayTypeNumber, DisplayTypeBoostNumber, DisplayTypeBoostPercentage, DisplayTypeDate:
		return true
	}
	return false
}

// AttributeEntry is one trait of a token.
type AttributeEntry struct {
	TraitType   string
	Value       AttributeValue
	DisplayType *DisplayType
	MaxValue    *AttributeValue
}

type AttributeOption func(*AttributeEntry)

func WithDisplayType(d DisplayType) AttributeOption {
	return func(a *AttributeEntry) {
		a.DisplayType = &d
	}
}

func WithMaxValue(v AttributeValue) AttributeOption {
	return func(a *AttributeEntry) {
		a.MaxValue = &v
	}
}

func NewAttribute(traitType string, value AttributeValue, opts ...AttributeOption) AttributeEntry {
	a := AttributeEntry{TraitType: traitType, Value: value}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a AttributeEntry) validate(path string) error {
	if err := a.Value.validate(joinPath(path, "value")); err != nil {
		return err
	}
	if a.MaxValue != nil {
		maxPath := joinPath(path, "max_value")
		if err := a.MaxValue.validate(maxPath); err != nil {
			return err
		}
		if !a.MaxValue.IsNumeric() {
			return &SchemaError{Kind: TypeMismatch, Field: maxPath, Err: errNumericMaxValue}
		}
	}
	return nil
}

func (a AttributeEntry) clone() AttributeEntry {
	c := a
	if a.DisplayType != nil {
		d := *a.DisplayType
		c.DisplayType = &d
	}
	if a.MaxValue != nil {
		v := *a.MaxValue
		c.MaxValue = &v
	}
	return c
}

func decodeAttributes(path string, raw interface{}) ([]AttributeEntry, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, typeMismatch(path, "array", raw)
	}
	attrs := make([]AttributeEntry, 0, len(items))
	for i, item := range items {
		itemPath := indexPath(path, i)
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, typeMismatch(itemPath, "object", item)
		}
		attr, err := decodeAttribute(itemPath, obj)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func decodeAttribute(path string, obj object) (AttributeEntry, error) {
	traitType, err := obj.requiredString(path, "trait_type")
	if err != nil {
		return AttributeEntry{}, err
	}

	rawValue, ok := obj.lookup("value")
	if !ok {
		return AttributeEntry{}, missingField(joinPath(path, "value"))
	}
	value, err := decodeValue(joinPath(path, "value"), rawValue)
	if err != nil {
		return AttributeEntry{}, err
	}
	attr := AttributeEntry{TraitType: traitType, Value: value}

	displayType, err := obj.optionalString(path, "display_type")
	if err != nil {
		return AttributeEntry{}, err
	}
	if displayType != nil {
		d := DisplayType(*displayType)
		attr.DisplayType = &d
	}

	if rawMax, ok := obj.lookup("max_value"); ok {
		maxPath := joinPath(path, "max_value")
		max, err := decodeValue(maxPath, rawMax)
		if err != nil {
			return AttributeEntry{}, err
		}
		if !max.IsNumeric() {
			return AttributeEntry{}, typeMismatch(maxPath, "number", rawMax)
		}
		attr.MaxValue = &max
	}
	return attr, nil
}

func (a AttributeEntry) encode(w *objectWriter) {
	w.stringField("trait_type", a.TraitType)
	a.Value.encode(w, "value")
	if a.DisplayType != nil {
		w.stringField("display_type", string(*a.DisplayType))
	}
	if a.MaxValue != nil {
		a.MaxValue.encode(w, "max_value")
	}
}
