package tree

import (
	"errors"
	"fmt"
)

// Field names used when a payload is flattened into a key-value store.
const (
	FieldFilePath          = "filePath"
	FieldHeader            = "header"
	FieldFooter            = "footer"
	FieldName              = "name"
	FieldIsDefaultExport   = "isDefaultExport"
	FieldLeadingSpace      = "leadingSpace"
	FieldTagName           = "tagName"
	FieldSpaceAfterTagName = "spaceAfterTagName"
	FieldAttributes        = "attributes"
	FieldSelfClosing       = "selfClosing"
	FieldOpenEnd           = "openEnd"
	FieldCloseTag          = "closeTag"
	FieldText              = "text"
	FieldCode              = "code"
)

var (
	// ErrUnknownField is returned for a field the node kind does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned when a value has the wrong type for a field.
	ErrFieldType = errors.New("wrong field type")
)

// Fields flattens a payload into field name -> value. Attribute lists are
// copied.
func Fields(p Payload) map[string]any {
	switch p := p.(type) {
	case *File:
		return map[string]any{FieldFilePath: p.FilePath, FieldHeader: p.Header}
	case *Component:
		return map[string]any{
			FieldName:            p.Name,
			FieldHeader:          p.Header,
			FieldFooter:          p.Footer,
			FieldIsDefaultExport: p.IsDefaultExport,
		}
	case *Element:
		return map[string]any{
			FieldLeadingSpace:      p.LeadingSpace,
			FieldTagName:           p.TagName,
			FieldSpaceAfterTagName: p.SpaceAfterTagName,
			FieldAttributes:        CloneAttrs(p.Attributes),
			FieldSelfClosing:       p.SelfClosing,
			FieldOpenEnd:           p.OpenEnd,
			FieldCloseTag:          p.CloseTag,
		}
	case *Text:
		return map[string]any{FieldText: p.Text}
	case *Expression:
		return map[string]any{FieldCode: p.Code}
	case *WrappingExpression:
		return map[string]any{FieldHeader: p.Header, FieldFooter: p.Footer}
	}
	return nil
}

// Decode rebuilds a payload of the given kind from flattened fields.
// Missing fields keep their zero value.
func Decode(kind Kind, fields map[string]any) (Payload, error) {
	p, err := NewPayload(kind)
	if err != nil {
		return nil, err
	}
	for name, value := range fields {
		if err := SetField(p, name, value); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SetField assigns one field of p, checking the name and value type.
func SetField(p Payload, field string, value any) error {
	var ok bool
	switch p := p.(type) {
	case *File:
		switch field {
		case FieldFilePath:
			p.FilePath, ok = value.(string)
		case FieldHeader:
			p.Header, ok = value.(string)
		default:
			return unknownField(p, field)
		}
	case *Component:
		switch field {
		case FieldName:
			p.Name, ok = value.(string)
		case FieldHeader:
			p.Header, ok = value.(string)
		case FieldFooter:
			p.Footer, ok = value.(string)
		case FieldIsDefaultExport:
			p.IsDefaultExport, ok = value.(bool)
		default:
			return unknownField(p, field)
		}
	case *Element:
		switch field {
		case FieldLeadingSpace:
			p.LeadingSpace, ok = value.(string)
		case FieldTagName:
			p.TagName, ok = value.(string)
		case FieldSpaceAfterTagName:
			p.SpaceAfterTagName, ok = value.(string)
		case FieldAttributes:
			var attrs []Attr
			if attrs, ok = value.([]Attr); ok {
				p.Attributes = CloneAttrs(attrs)
			}
		case FieldSelfClosing:
			p.SelfClosing, ok = value.(bool)
		case FieldOpenEnd:
			p.OpenEnd, ok = value.(string)
		case FieldCloseTag:
			p.CloseTag, ok = value.(string)
		default:
			return unknownField(p, field)
		}
	case *Text:
		if field != FieldText {
			return unknownField(p, field)
		}
		p.Text, ok = value.(string)
	case *Expression:
		if field != FieldCode {
			return unknownField(p, field)
		}
		p.Code, ok = value.(string)
	case *WrappingExpression:
		switch field {
		case FieldHeader:
			p.Header, ok = value.(string)
		case FieldFooter:
			p.Footer, ok = value.(string)
		default:
			return unknownField(p, field)
		}
	default:
		return fmt.Errorf("unsupported payload %T", p)
	}
	if !ok {
		return fmt.Errorf("%w: %s.%s cannot hold %T", ErrFieldType, p.Kind(), field, value)
	}
	return nil
}

func unknownField(p Payload, field string) error {
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, p.Kind(), field)
}
