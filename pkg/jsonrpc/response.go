package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/theapemachine/jrpc-go/pkg/errors"
)

/*
Answer is the two-arm payload of a response: either a raw JSON result or a
protocol error. The wire shape carries no discriminant; the arms surface as
mutually exclusive "result"/"error" keys and are told apart by key presence.
*/
type Answer struct {
	result json.RawMessage
	err    *errors.RpcError
}

/*
Result builds the success arm. A nil value encodes as a null result.
*/
func Result(raw json.RawMessage) Answer {
	if raw == nil {
		raw = json.RawMessage("null")
	}
	return Answer{result: raw}
}

/*
Failure builds the error arm.
*/
func Failure(err *errors.RpcError) Answer {
	if err == nil {
		err = errors.ErrInternal
	}
	return Answer{err: err}
}

/*
Raw returns the result arm, or nil if this answer is an error.
*/
func (a Answer) Raw() json.RawMessage {
	return a.result
}

/*
Err returns the error arm, or nil if this answer is a result.
*/
func (a Answer) Err() *errors.RpcError {
	return a.err
}

func (a Answer) IsError() bool {
	return a.err != nil
}

/*
Response is the terminal artifact of one request/response exchange. It is
built exactly once, success or error, and always encodes with the "2.0" tag.
*/
type Response struct {
	Answer Answer
	ID     ID
}

// wireResponse pins the key order: jsonrpc, then result or error, then id.
type wireResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
	ID      ID               `json:"id"`
}

/*
Success wraps a computed value into a response envelope. When the value
itself cannot be serialized the response degrades to an InternalError reply
carrying the serialization failure; the transport always gets a well formed
envelope, never a panic.
*/
func Success(id ID, result any) *Response {
	raw, err := json.Marshal(result)
	if err != nil {
		return Error(id, errors.New(errors.InternalError, err.Error(), nil))
	}

	return &Response{
		Answer: Result(raw),
		ID:     id,
	}
}

/*
Error wraps a pre-built RpcError as-is. The caller is trusted to have
constructed a sensible error.
*/
func Error(id ID, rpcErr *errors.RpcError) *Response {
	return &Response{
		Answer: Failure(rpcErr),
		ID:     id,
	}
}

/*
MarshalJSON flattens the answer union into the envelope: exactly one of
"result" or "error" appears next to "jsonrpc" and "id". Encoding is
deterministic, so re-serializing the same response is byte identical.
*/
func (r Response) MarshalJSON() ([]byte, error) {
	wire := wireResponse{
		JSONRPC: Version,
		ID:      r.ID,
	}

	if r.Answer.IsError() {
		wire.Error = r.Answer.err
	} else {
		wire.Result = r.Answer.result
		if wire.Result == nil {
			wire.Result = json.RawMessage("null")
		}
	}

	return json.Marshal(wire)
}

/*
UnmarshalJSON is the structural inverse: it matches on which of the
"result"/"error" keys is present. Exactly one must be.
*/
func (r *Response) UnmarshalJSON(data []byte) error {
	var wire struct {
		JSONRPC string           `json:"jsonrpc"`
		Result  json.RawMessage  `json:"result"`
		Error   *errors.RpcError `json:"error"`
		ID      ID               `json:"id"`
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if wire.JSONRPC != Version {
		return ErrUnknownVersion
	}

	switch {
	case wire.Error != nil && wire.Result != nil:
		return fmt.Errorf("response carries both result and error")
	case wire.Error != nil:
		r.Answer = Failure(wire.Error)
	case wire.Result != nil:
		r.Answer = Result(wire.Result)
	default:
		return fmt.Errorf("response carries neither result nor error")
	}

	r.ID = wire.ID
	return nil
}
