// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package measurements_test

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/pkg/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const device = "DATACAKE-SERIAL-1"

func TestMap(t *testing.T) {
	cases := []struct {
		desc        string
		body        string
		contentType string
		device      string
		res         []measurements.Measurement
		err         error
	}{
		{
			desc:   "map single numeric record",
			body:   `[{"n":"temp","v":21.5}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "TEMP", Value: measurements.NumberValue(21.5)},
			},
		},
		{
			desc:   "map record with empty name",
			body:   `[{"n":"","v":1}]`,
			device: device,
			res:    []measurements.Measurement{},
		},
		{
			desc:   "map record without name",
			body:   `[{"v":1}]`,
			device: device,
			res:    []measurements.Measurement{},
		},
		{
			desc:   "map record without value",
			body:   `[{"n":"temp","u":"Cel"}]`,
			device: device,
			res:    []measurements.Measurement{},
		},
		{
			desc:   "map empty pack",
			body:   `[]`,
			device: device,
			res:    []measurements.Measurement{},
		},
		{
			desc:   "map prefers numeric over string and boolean values",
			body:   `[{"n":"mixed","v":3,"vs":"three","vb":true}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "MIXED", Value: measurements.NumberValue(3)},
			},
		},
		{
			desc:   "map prefers string over boolean value",
			body:   `[{"n":"state","vs":"open","vb":false}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "STATE", Value: measurements.StringValue("open")},
			},
		},
		{
			desc:   "map boolean value",
			body:   `[{"n":"door","vb":false}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "DOOR", Value: measurements.BoolValue(false)},
			},
		},
		{
			desc:   "map null numeric value falls back to string value",
			body:   `[{"n":"state","v":null,"vs":"idle"}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "STATE", Value: measurements.StringValue("idle")},
			},
		},
		{
			desc:   "map keeps record order and drops invalid records",
			body:   `[{"bn":"urn:dev:ow:10e2073a01080063:","n":"temperature","v":17},{"n":"","v":2},{"n":"humidity","v":56},{"n":"battery"},{"n":"Status","vs":"ok"}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "TEMPERATURE", Value: measurements.NumberValue(17)},
				{Device: device, Field: "HUMIDITY", Value: measurements.NumberValue(56)},
				{Device: device, Field: "STATUS", Value: measurements.StringValue("ok")},
			},
		},
		{
			desc:   "map zero values",
			body:   `[{"n":"level","v":0},{"n":"label","vs":""}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "LEVEL", Value: measurements.NumberValue(0)},
				{Device: device, Field: "LABEL", Value: measurements.StringValue("")},
			},
		},
		{
			desc:        "map JSON with explicit content type and parameters",
			body:        `[{"n":"temp","v":-4.25}]`,
			contentType: "application/senml+json; charset=utf-8",
			device:      device,
			res: []measurements.Measurement{
				{Device: device, Field: "TEMP", Value: measurements.NumberValue(-4.25)},
			},
		},
		{
			desc:   "map with empty device",
			body:   `[{"n":"temp","v":1}]`,
			device: "",
			res: []measurements.Measurement{
				{Device: "", Field: "TEMP", Value: measurements.NumberValue(1)},
			},
		},
		{
			desc:   "map malformed JSON",
			body:   `[{"n":"temp","v":21.5}`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map empty body",
			body:   "",
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map JSON object instead of array",
			body:   `{"n":"temp","v":21.5}`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map record with name outside the SenML character set",
			body:   `[{"n":"soil moisture","v":50},{"n":"ünïcode","vs":"v"}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "SOIL MOISTURE", Value: measurements.NumberValue(50)},
				{Device: device, Field: "ÜNÏCODE", Value: measurements.StringValue("v")},
			},
		},
		{
			desc:   "map pack mixing skipped and multi-value records",
			body:   `[{"n":"","v":1},{"n":"temp","u":"Cel"},{"n":"mixed","v":3,"vs":"three"},{"n":"hum","v":50}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "MIXED", Value: measurements.NumberValue(3)},
				{Device: device, Field: "HUM", Value: measurements.NumberValue(50)},
			},
		},
		{
			desc:   "map ignores labels with different case",
			body:   `[{"N":"temp","V":21.5}]`,
			device: device,
			res:    []measurements.Measurement{},
		},
		{
			desc:   "map takes value from exact label only",
			body:   `[{"n":"temp","v":1,"V":2}]`,
			device: device,
			res: []measurements.Measurement{
				{Device: device, Field: "TEMP", Value: measurements.NumberValue(1)},
			},
		},
		{
			desc:   "map null name is skipped",
			body:   `[{"n":null,"v":1}]`,
			device: device,
			res:    []measurements.Measurement{},
		},
		{
			desc:   "map null body",
			body:   `null`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map scalar body",
			body:   `42`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map null record",
			body:   `[{"n":"temp","v":1},null]`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map non-object record",
			body:   `[{"n":"temp","v":1},5]`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map record with numeric name",
			body:   `[{"n":5,"v":1}]`,
			device: device,
			err:    measurements.ErrParse,
		},
		{
			desc:   "map record with mistyped value",
			body:   `[{"n":"temp","v":"21.5"}]`,
			device: device,
			err:    measurements.ErrParse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			req := measurements.Request{Body: []byte(tc.body), ContentType: tc.contentType}
			res, err := measurements.Map(tc.device, req)
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s got %s", tc.desc, tc.err, err))
			assert.Equal(t, tc.res, res, fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.res, res))
		})
	}
}

func TestMapCBOR(t *testing.T) {
	// Following hex-encoded bytes correspond to the content of:
	// [{0: "temp", 2: 21.5}, {0: "door", 4: true}, {0: "", 2: 1.0}]
	// For more details for mapping SenML labels to integers, please take a look here: https://tools.ietf.org/html/rfc8428#page-19.
	cborBytes, err := hex.DecodeString("83a2006474656d7002fb4035800000000000a20064646f6f7204f5a2006002fb3ff0000000000000")
	require.Nil(t, err, "Decoding CBOR hex expected to succeed")

	res, err := measurements.Map(device, measurements.Request{Body: cborBytes, ContentType: measurements.SenMLCBOR})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	expected := []measurements.Measurement{
		{Device: device, Field: "TEMP", Value: measurements.NumberValue(21.5)},
		{Device: device, Field: "DOOR", Value: measurements.BoolValue(true)},
	}
	assert.Equal(t, expected, res)

	jsonRes, err := measurements.Map(device, measurements.Request{Body: []byte(`[{"n":"temp","v":21.5},{"n":"door","vb":true},{"n":"","v":1}]`)})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, jsonRes, res, "CBOR and JSON packs with the same records should map identically")

	_, err = measurements.Map(device, measurements.Request{Body: []byte(`[{"n":"temp","v":21.5}]`), ContentType: measurements.SenMLCBOR})
	assert.True(t, errors.Contains(err, measurements.ErrParse), fmt.Sprintf("expected %s got %s", measurements.ErrParse, err))
}

func TestMapCBORRecords(t *testing.T) {
	multi, err := cbor.Marshal([]map[int]interface{}{
		{0: "mixed", 2: 3.0, 3: "three", 4: true},
		{1: "Cel", 0: "temp"},
		{0: "state", 3: "open", 4: false},
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	cases := []struct {
		desc string
		body []byte
		res  []measurements.Measurement
		err  error
	}{
		{
			desc: "map multi-value and valueless records",
			body: multi,
			res: []measurements.Measurement{
				{Device: device, Field: "MIXED", Value: measurements.NumberValue(3)},
				{Device: device, Field: "STATE", Value: measurements.StringValue("open")},
			},
		},
		{
			desc: "map empty CBOR array",
			body: []byte{0x80},
			res:  []measurements.Measurement{},
		},
		{
			desc: "map CBOR null",
			body: []byte{0xf6},
			err:  measurements.ErrParse,
		},
		{
			desc: "map CBOR map instead of array",
			body: []byte{0xa0},
			err:  measurements.ErrParse,
		},
		{
			desc: "map empty CBOR body",
			body: []byte{},
			err:  measurements.ErrParse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res, err := measurements.Map(device, measurements.Request{Body: tc.body, ContentType: measurements.SenMLCBOR})
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s got %s", tc.desc, tc.err, err))
			assert.Equal(t, tc.res, res, fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.res, res))
		})
	}
}

func TestMapInvariants(t *testing.T) {
	packs := []string{
		`[{"n":"a","v":1},{"n":"b","vs":"x"},{"n":"c","vb":true}]`,
		`[{"n":"MiXeD","v":1},{"n":""},{"n":"x"},{"vs":"orphan"}]`,
		`[{"n":"ünïcode","vs":"v"},{"n":"snake_case","vb":false}]`,
		`[{"bn":"base","n":"n1","v":1},{"n":"n2","vd":"ZGF0YQ"}]`,
		`[{"N":"upper","V":1},{"n":"lower","v":1,"V":2},{"n":"multi","v":1,"vs":"x","vb":true}]`,
		`[{"n":"with space","v":1},{"n":"","vs":"x"},{"n":"t","u":"Cel"}]`,
	}

	for _, pack := range packs {
		var records []map[string]interface{}
		res, err := measurements.Map(device, measurements.Request{Body: []byte(pack)})
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error %s", pack, err))
		require.Nil(t, decodeRecords(pack, &records))

		var expected []string
		for _, r := range records {
			name, _ := r["n"].(string)
			_, hasV := r["v"]
			_, hasVS := r["vs"]
			_, hasVB := r["vb"]
			if name != "" && (hasV || hasVS || hasVB) {
				expected = append(expected, strings.ToUpper(name))
			}
		}

		assert.LessOrEqual(t, len(res), len(records), fmt.Sprintf("%s: more measurements than records", pack))
		assert.Len(t, res, len(expected), fmt.Sprintf("%s: unexpected measurement count", pack))
		for i, m := range res {
			assert.Equal(t, expected[i], m.Field, fmt.Sprintf("%s: field %d not upper-cased record name", pack, i))
			assert.Equal(t, device, m.Device, fmt.Sprintf("%s: measurement %d device mismatch", pack, i))
		}
	}
}
