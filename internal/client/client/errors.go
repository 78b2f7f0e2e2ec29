package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/storyshare/internal/common"
)

// apiResponse is the envelope shared by every endpoint.
type apiResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// errMalformedBody marks a 2xx response whose body could not be decoded.
// The request itself was accepted.
var errMalformedBody = errors.New("malformed response body")

// mapTransportError wraps a failure that produced no HTTP response.
func mapTransportError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrNetworkUnavailable, err)
}

// mapStatus converts a non-2xx response into a *common.RemoteError.
func mapStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var env apiResponse
	msg := ""
	if err := json.Unmarshal(body, &env); err == nil {
		msg = env.Message
	}
	return &common.RemoteError{StatusCode: resp.StatusCode, Message: msg}
}

// malformedBody reports an undecodable success body as a remote failure that
// still matches errMalformedBody.
func malformedBody(status int, err error) error {
	re := &common.RemoteError{StatusCode: status, Message: fmt.Sprintf("malformed response: %v", err)}
	return fmt.Errorf("%w: %w", errMalformedBody, re)
}
