package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theapemachine/jrpc-go/pkg/errors"
)

func TestSuccessWireShape(t *testing.T) {
	resp := Success(NumberID(0), 111)

	b, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","result":111,"id":0}`, string(b))
}

func TestErrorWireShape(t *testing.T) {
	resp := Error(NumberID(0), errors.New(errors.MethodNotFound, "Method `lol` not found", nil))

	b, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.Equal(
		t,
		"{\"jsonrpc\":\"2.0\",\"error\":{\"code\":-32601,\"message\":\"Method `lol` not found\",\"data\":null},\"id\":0}",
		string(b),
	)
}

func TestSuccessWithUnserializableValueDegrades(t *testing.T) {
	// A channel has no JSON representation; the builder must degrade to an
	// InternalError envelope instead of failing or panicking.
	resp := Success(NumberID(3), make(chan int))

	assert.True(t, resp.Answer.IsError())
	assert.Equal(t, errors.CodeInternalError, resp.Answer.Err().Code)
	assert.Equal(t, NumberID(3), resp.ID)
	assert.NotEmpty(t, resp.Answer.Err().Message)

	b, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"error"`)
}

func TestSuccessNilResult(t *testing.T) {
	b, err := json.Marshal(Success(StringID("n"), nil))
	assert.NoError(t, err)
	assert.Equal(t, `{"jsonrpc":"2.0","result":null,"id":"n"}`, string(b))
}

func TestResponseRoundTripSuccess(t *testing.T) {
	original := Success(StringID("abc"), map[string]int{"n": 5})

	b, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded Response
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, original.ID, decoded.ID)
	assert.False(t, decoded.Answer.IsError())
	assert.JSONEq(t, `{"n":5}`, string(decoded.Answer.Raw()))
}

func TestResponseRoundTripError(t *testing.T) {
	original := Error(NumberID(9), errors.New(errors.ServerError(-32042), "boom", "details"))

	b, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded Response
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, NumberID(9), decoded.ID)
	assert.True(t, decoded.Answer.IsError())
	assert.Equal(t, -32042, decoded.Answer.Err().Code)
	assert.Equal(t, "boom", decoded.Answer.Err().Message)
}

func TestResponseDecodeRejectsInvalidUnions(t *testing.T) {
	cases := []string{
		`{"jsonrpc":"2.0","id":1}`,                              // neither arm
		`{"jsonrpc":"2.0","result":1,"error":{"code":-32603,"message":"x","data":null},"id":1}`, // both arms
		`{"jsonrpc":"1.0","result":1,"id":1}`,                   // bad version
	}

	for _, body := range cases {
		var resp Response
		assert.Error(t, json.Unmarshal([]byte(body), &resp), "body: %s", body)
	}
}

func TestResponseDecodeNullResultIsSuccess(t *testing.T) {
	// "result":null is a present success arm, not an absent one.
	var resp Response
	assert.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","result":null,"id":4}`), &resp))
	assert.False(t, resp.Answer.IsError())
	assert.Equal(t, "null", string(resp.Answer.Raw()))
}

func TestResponseSerializationIsIdempotent(t *testing.T) {
	resp := Error(NumberID(1), errors.New(errors.InvalidRequest, "nope", nil))

	first, err := json.Marshal(resp)
	assert.NoError(t, err)
	second, err := json.Marshal(resp)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
