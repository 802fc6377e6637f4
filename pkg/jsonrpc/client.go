package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

/*
Client posts single request envelopes to a JSON-RPC over HTTP endpoint. Each
call gets a fresh string id, and the matching response is checked for
identifier correlation before the result arm is decoded.
*/
type Client struct {
	URL    string
	Client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL:    url,
		Client: &http.Client{},
	}
}

/*
Call invokes method with params and decodes the result arm into result (which
may be nil when the caller does not care). A response on the error arm is
returned as the *errors.RpcError it carries.
*/
func (c *Client) Call(
	ctx context.Context,
	method string,
	params any,
	result any,
) error {
	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	payload := Request{
		ID:     StringID(uuid.NewString()),
		Method: method,
	}

	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}
		payload.Params = b
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}

	var rpcResp Response
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return err
	}

	// Early protocol failures are answered with a null id; anything else must
	// correlate with the request we sent.
	if !rpcResp.ID.IsNull() && rpcResp.ID != payload.ID {
		return fmt.Errorf("response id %s does not match request id %s", rpcResp.ID, payload.ID)
	}

	if rpcErr := rpcResp.Answer.Err(); rpcErr != nil {
		return rpcErr
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Answer.Raw(), result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}
