// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package measurements

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/absmach/formatters/pkg/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/mainflux/senml"
)

const (
	// SenMLJSON represents SenML in JSON format content type.
	SenMLJSON = "application/senml+json"

	// SenMLCBOR represents SenML in CBOR format content type.
	SenMLCBOR = "application/senml+cbor"
)

var formats = map[string]senml.Format{
	SenMLJSON: senml.JSON,
	SenMLCBOR: senml.CBOR,
}

var (
	// ErrParse indicates a body that is not a well-formed SenML pack.
	ErrParse = errors.New("failed to parse senml payload")

	errNotArray  = errors.New("senml pack is not an array")
	errNotRecord = errors.New("senml record is not an object")
)

// cborArray is the major type of a CBOR array in the initial byte.
const cborArray = 4

// Labels read from JSON records. SenML labels are case sensitive, so only
// exact matches are taken into account.
const (
	labelName        = "n"
	labelValue       = "v"
	labelStringValue = "vs"
	labelBoolValue   = "vb"
)

// Map decodes the SenML pack carried by req and returns one Measurement per
// record that has both a name and a value. Every measurement is attributed
// to device. Records are kept in input order and the field is the
// upper-cased record name.
//
// The value is taken from "v", then "vs", then "vb"; the first one present
// wins. Records are not validated against the SenML rules: a record with
// no name, no value or several values is skipped or resolved, never
// rejected. Base fields and record time are ignored.
func Map(device string, req Request) ([]Measurement, error) {
	records, err := decode(req.Body, format(req.ContentType))
	if err != nil {
		return nil, errors.Wrap(ErrParse, err)
	}

	ms := make([]Measurement, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		val, ok := resolve(r)
		if !ok {
			continue
		}
		ms = append(ms, Measurement{
			Device: device,
			Field:  strings.ToUpper(r.Name),
			Value:  val,
		})
	}

	return ms, nil
}

// decode reads the records of a pack without running senml.Validate, which
// rejects the whole pack on the first record the mapper would skip.
func decode(body []byte, f senml.Format) ([]senml.Record, error) {
	if f == senml.CBOR {
		return decodeCBOR(body)
	}
	return decodeJSON(body)
}

func decodeJSON(body []byte) ([]senml.Record, error) {
	var objs []map[string]json.RawMessage
	if err := json.Unmarshal(body, &objs); err != nil {
		return nil, err
	}
	if objs == nil {
		return nil, errNotArray
	}

	records := make([]senml.Record, len(objs))
	for i, obj := range objs {
		if obj == nil {
			return nil, errors.Wrap(errNotRecord, fmt.Errorf("record %d is null", i))
		}
		r := &records[i]
		if err := label(obj, labelName, &r.Name); err != nil {
			return nil, err
		}
		if err := label(obj, labelValue, &r.Value); err != nil {
			return nil, err
		}
		if err := label(obj, labelStringValue, &r.StringValue); err != nil {
			return nil, err
		}
		if err := label(obj, labelBoolValue, &r.BoolValue); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func label(obj map[string]json.RawMessage, key string, dst interface{}) error {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("label %q: %w", key, err)
	}
	return nil
}

func decodeCBOR(body []byte) ([]senml.Record, error) {
	if len(body) == 0 || body[0]>>5 != cborArray {
		return nil, errNotArray
	}

	var records []senml.Record
	if err := cbor.Unmarshal(body, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func resolve(r senml.Record) (Value, bool) {
	switch {
	case r.Value != nil:
		return NumberValue(*r.Value), true
	case r.StringValue != nil:
		return StringValue(*r.StringValue), true
	case r.BoolValue != nil:
		return BoolValue(*r.BoolValue), true
	default:
		return Value{}, false
	}
}

// format picks the SenML decoding format for a Content-Type header value.
// Unknown and empty content types fall back to JSON.
func format(contentType string) senml.Format {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if f, ok := formats[strings.ToLower(strings.TrimSpace(mediaType))]; ok {
		return f
	}
	return senml.JSON
}
