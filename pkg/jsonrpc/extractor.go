package jsonrpc

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/theapemachine/jrpc-go/pkg/errors"
)

/*
Extractor is a validated request-in-progress: the correlation id, the method
name, and the still-raw params. Params parsing is deferred because only the
method handler knows the expected shape.
*/
type Extractor struct {
	ID     ID
	Method string
	params json.RawMessage
}

/*
RawParams exposes the undecoded params value.
*/
func (ex *Extractor) RawParams() json.RawMessage {
	return ex.params
}

/*
FromHTTPRequest walks the three validation checkpoints: content type, body
read, envelope decode. Each failure short-circuits into a terminal
InvalidRequest response with a null id, since none of the checkpoints can
trust that an id was readable. The returned response is nil on success.
*/
func FromHTTPRequest(r *http.Request) (*Extractor, *Response) {
	if err := checkContentType(r.Header.Get("Content-Type")); err != nil {
		return nil, invalidRequest(err)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, invalidRequest(fmt.Errorf("read body: %w", err))
	}

	req, err := DecodeRequest(body)
	if err != nil {
		return nil, invalidRequest(err)
	}

	return &Extractor{
		ID:     req.ID,
		Method: req.Method,
		params: req.Params,
	}, nil
}

// checkContentType accepts application/json and any application/*+json
// structured syntax, per the JSON-RPC over HTTP convention.
func checkContentType(header string) error {
	if header == "" {
		return fmt.Errorf("missing Content-Type header")
	}

	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return fmt.Errorf("parse Content-Type: %w", err)
	}

	kind, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || kind != "application" {
		return fmt.Errorf("unsupported Content-Type %q", mediaType)
	}

	if subtype != "json" && !strings.HasSuffix(subtype, "+json") {
		return fmt.Errorf("unsupported Content-Type %q", mediaType)
	}

	return nil
}

func invalidRequest(err error) *Response {
	return Error(NullID(), errors.New(errors.InvalidRequest, err.Error(), nil))
}

/*
ParseParams decodes the stored params into the handler's expected shape. On
failure it yields an InvalidParams response addressed to the request's id:
unlike the extraction checkpoints, the id is known by the time params are
parsed. This is a free function because Go methods cannot carry their own
type parameters.
*/
func ParseParams[T any](ex *Extractor) (T, *Response) {
	var out T

	params := ex.params
	if params == nil {
		params = json.RawMessage("null")
	}

	if err := json.Unmarshal(params, &out); err != nil {
		var zero T
		return zero, Error(ex.ID, errors.New(errors.InvalidParams, err.Error(), nil))
	}

	return out, nil
}

/*
MethodNotFound builds the dispatch-miss response for the given method name,
addressed to the request's id.
*/
func (ex *Extractor) MethodNotFound(method string) *Response {
	rpcErr := errors.New(
		errors.MethodNotFound,
		fmt.Sprintf("Method `%s` not found", method),
		nil,
	)
	return Error(ex.ID, rpcErr)
}

/*
JrpcResult is the outcome handed back by caller-supplied dispatch code. Both
arms carry a complete Response, because a protocol failure is still answered
on the wire; Failed only records which arm produced it.
*/
type JrpcResult struct {
	Response *Response
	Failed   bool
}

/*
Ok wraps a success-path response.
*/
func Ok(resp *Response) JrpcResult {
	return JrpcResult{Response: resp}
}

/*
Fail wraps a failure-path response.
*/
func Fail(resp *Response) JrpcResult {
	return JrpcResult{Response: resp, Failed: true}
}
