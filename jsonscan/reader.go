package jsonscan

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"

	apperrors "github.com/kbukum/restkit/errors"
)

// Default property names.
const (
	DefaultStatusProperty   = "status"
	DefaultItemsProperty    = "value"
	DefaultNextLinkProperty = "nextLink"
)

const jsonWhitespace = " \t\n\r"

// ItemsAndNextLink is the result of ReadItemsAndNextLink.
type ItemsAndNextLink struct {
	// Items holds one span per array element, in array order.
	Items []RawSpan
	// ItemsFound is false when the items property is absent or null.
	ItemsFound bool
	// NextLink is the continuation URI, valid only when HasNextLink is true.
	NextLink string
	// HasNextLink is false when the property is absent, null or empty.
	HasNextLink bool
}

// ReadStatus returns the string value of the top-level property (default
// "status"). It fails with a PROPERTY_NOT_FOUND error when the object has no
// such property and with PARSE_ERROR when the body is not a single well-formed
// JSON object or the property value is not a string. The rest of the object is
// still scanned after a match, so a truncated body is rejected. When the
// property repeats, the first occurrence wins.
func ReadStatus(body []byte, property string) (string, error) {
	if property == "" {
		property = DefaultStatusProperty
	}

	iter := jsoniter.ConfigDefault.BorrowIterator(body)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)

	if err := expectObject(iter); err != nil {
		return "", err
	}

	var status string
	found := false
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		if field != property || found {
			it.Skip()
			return true
		}
		if it.WhatIsNext() != jsoniter.StringValue {
			it.ReportError("ReadStatus", "property "+property+" is not a string")
			return false
		}
		status = it.ReadString()
		found = true
		return true
	})

	if iter.Error != nil {
		return "", apperrors.Parse(iter.Error.Error(), iter.Error)
	}
	if err := expectEnd(iter); err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.PropertyNotFound(property)
	}
	return status, nil
}

// ReadItemsAndNextLink scans a page body for the items array and the
// continuation link. Every other property is skipped without being decoded.
func ReadItemsAndNextLink(body []byte, itemProp, nextLinkProp string) (ItemsAndNextLink, error) {
	if itemProp == "" {
		itemProp = DefaultItemsProperty
	}
	if nextLinkProp == "" {
		nextLinkProp = DefaultNextLinkProperty
	}

	iter := jsoniter.ConfigDefault.BorrowIterator(body)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)

	var out ItemsAndNextLink
	if err := expectObject(iter); err != nil {
		return out, err
	}

	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		switch field {
		case itemProp:
			return readItems(it, &out)
		case nextLinkProp:
			return readNextLink(it, &out)
		default:
			it.Skip()
			return true
		}
	})

	if iter.Error != nil {
		return ItemsAndNextLink{}, apperrors.Parse(iter.Error.Error(), iter.Error)
	}
	if err := expectEnd(iter); err != nil {
		return ItemsAndNextLink{}, err
	}
	return out, nil
}

func expectObject(iter *jsoniter.Iterator) error {
	next := iter.WhatIsNext()
	if next == jsoniter.ObjectValue {
		return nil
	}
	if iter.Error != nil {
		return apperrors.Parse("expected a JSON object", iter.Error)
	}
	return apperrors.Parse("expected a JSON object, found "+valueTypeName(next), nil)
}

// expectEnd fails unless only whitespace follows the top-level object.
func expectEnd(iter *jsoniter.Iterator) error {
	if iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF {
		return nil
	}
	return apperrors.Parse("unexpected data after the JSON object", nil)
}

func readItems(it *jsoniter.Iterator, out *ItemsAndNextLink) bool {
	switch it.WhatIsNext() {
	case jsoniter.NilValue:
		it.ReadNil()
		return true
	case jsoniter.ArrayValue:
	default:
		it.ReportError("ReadItemsAndNextLink", "items property is not an array")
		return false
	}

	out.ItemsFound = true
	out.Items = make([]RawSpan, 0)
	return it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		raw := bytes.TrimLeft(it.SkipAndReturnBytes(), jsonWhitespace)
		if it.Error != nil {
			return false
		}
		out.Items = append(out.Items, RawSpan{raw: raw})
		return true
	})
}

func readNextLink(it *jsoniter.Iterator, out *ItemsAndNextLink) bool {
	switch it.WhatIsNext() {
	case jsoniter.NilValue:
		it.ReadNil()
		out.NextLink, out.HasNextLink = "", false
	case jsoniter.StringValue:
		out.NextLink = it.ReadString()
		out.HasNextLink = out.NextLink != ""
	default:
		it.ReportError("ReadItemsAndNextLink", "next link property is neither a string nor null")
		return false
	}
	return true
}

func valueTypeName(vt jsoniter.ValueType) string {
	switch vt {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid token"
	}
}
