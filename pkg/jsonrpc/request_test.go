package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRequest(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":0,"method":"add","params":{"a":0,"b":111}}`

	req, err := DecodeRequest([]byte(body))
	assert.NoError(t, err)
	assert.Equal(t, NumberID(0), req.ID)
	assert.Equal(t, "add", req.Method)
	assert.JSONEq(t, `{"a":0,"b":111}`, string(req.Params))
}

func TestDecodeRequestStringID(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","id":"req-1","method":"ping","params":null}`))
	assert.NoError(t, err)
	assert.Equal(t, StringID("req-1"), req.ID)
}

func TestDecodeRequestExplicitNullID(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","id":null,"method":"ping","params":null}`))
	assert.NoError(t, err)
	assert.True(t, req.ID.IsNull())
	assert.NotEqual(t, NumberID(0), req.ID)
}

func TestDecodeRequestOmittedIDIsNull(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","method":"ping","params":null}`))
	assert.NoError(t, err)
	assert.True(t, req.ID.IsNull())
}

func TestDecodeRequestRejectsBadVersion(t *testing.T) {
	for _, body := range []string{
		`{"jsonrpc":"1.0","id":1,"method":"add","params":[]}`,
		`{"jsonrpc":"2.1","id":1,"method":"add","params":[]}`,
		`{"id":1,"method":"add","params":[]}`,
	} {
		_, err := DecodeRequest([]byte(body))
		assert.ErrorIs(t, err, ErrUnknownVersion, "body: %s", body)
	}
}

func TestDecodeRequestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"add","params":[],"extra":1}`))
	assert.Error(t, err)
}

func TestDecodeRequestRejectsMalformedInput(t *testing.T) {
	for _, body := range []string{
		``,
		`{`,
		`[1,2,3]`,
		`"just a string"`,
		`{"jsonrpc":"2.0","id":1,"params":[]}`,                  // missing method
		`{"jsonrpc":"2.0","id":1,"method":7,"params":[]}`,       // mistyped method
		`{"jsonrpc":"2.0","id":{},"method":"add","params":[]}`,  // mistyped id
		`{"jsonrpc":"2.0","id":1,"method":"a","params":null} 1`, // trailing data
	} {
		_, err := DecodeRequest([]byte(body))
		assert.Error(t, err, "body: %s", body)
	}
}

func TestRequestMarshalWireShape(t *testing.T) {
	req := Request{
		ID:     NumberID(0),
		Method: "add",
		Params: json.RawMessage(`{"a":0,"b":111}`),
	}

	b, err := json.Marshal(req)
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":0,"method":"add","params":{"a":0,"b":111}}`, string(b))
}

func TestRequestMarshalNilParams(t *testing.T) {
	b, err := json.Marshal(Request{ID: StringID("x"), Method: "ping"})
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":"x","method":"ping","params":null}`, string(b))
}

func TestRequestRoundTrip(t *testing.T) {
	original := Request{
		ID:     StringID("round"),
		Method: "echo",
		Params: json.RawMessage(`[1,"two",null]`),
	}

	b, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded Request
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Method, decoded.Method)
	assert.JSONEq(t, string(original.Params), string(decoded.Params))
}

func TestParamsInto(t *testing.T) {
	req := Request{Method: "add", Params: json.RawMessage(`{"a":1,"b":2}`)}

	var params struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	assert.NoError(t, req.ParamsInto(&params))
	assert.Equal(t, 1, params.A)
	assert.Equal(t, 2, params.B)

	var wrong []string
	assert.Error(t, req.ParamsInto(&wrong))
}
