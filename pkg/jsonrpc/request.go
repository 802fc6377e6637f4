package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the only protocol version this package speaks.
const Version = "2.0"

// ErrUnknownVersion is returned when a request's jsonrpc tag is not "2.0".
var ErrUnknownVersion = errors.New("Unknown jsonrpc version")

/*
Request is a decoded JSON-RPC request envelope. The version tag is validated
during decode and never stored: a Request in hand is already known to be a
"2.0" request. Params stay raw because only the method handler knows their
expected shape.
*/
type Request struct {
	ID     ID
	Method string
	Params json.RawMessage
}

// wireRequest is the strict wire shape: exactly these four keys.
type wireRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      ID              `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

/*
DecodeRequest parses a single request envelope. It rejects unknown top-level
keys, a missing or mistyped method, and any jsonrpc tag other than the
literal "2.0". A bad version is a hard decode failure here; the HTTP
extractor is responsible for turning it into a graceful InvalidRequest reply.
*/
func DecodeRequest(data []byte) (Request, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var wire wireRequest
	if err := dec.Decode(&wire); err != nil {
		return Request{}, err
	}

	// Trailing content after the envelope is not a single request.
	if dec.More() {
		return Request{}, errors.New("unexpected data after request object")
	}

	if wire.JSONRPC != Version {
		return Request{}, ErrUnknownVersion
	}

	if wire.Method == "" {
		return Request{}, errors.New("missing method")
	}

	return Request{
		ID:     wire.ID,
		Method: wire.Method,
		Params: wire.Params,
	}, nil
}

/*
MarshalJSON emits the four-key wire shape with the version tag restored.
Absent params encode as null.
*/
func (r Request) MarshalJSON() ([]byte, error) {
	params := r.Params
	if params == nil {
		params = json.RawMessage("null")
	}

	return json.Marshal(wireRequest{
		JSONRPC: Version,
		ID:      r.ID,
		Method:  r.Method,
		Params:  params,
	})
}

/*
UnmarshalJSON makes Request usable with the standard decoder while keeping
the same strict semantics as DecodeRequest.
*/
func (r *Request) UnmarshalJSON(data []byte) error {
	req, err := DecodeRequest(data)
	if err != nil {
		return err
	}
	*r = req
	return nil
}

/*
ParamsInto decodes the raw params into out. Absent params decode as null.
*/
func (r Request) ParamsInto(out any) error {
	params := r.Params
	if params == nil {
		params = json.RawMessage("null")
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}
