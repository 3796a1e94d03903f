package aria2

import (
	"errors"
	"fmt"
)

var ErrMissingResult = errors.New("aria2: response has no result")

// RPCError is a JSON-RPC error object returned by the download manager.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("aria2 rpc error %d: %s", e.Code, e.Message)
}

// StatusError is a non-2xx HTTP answer from the RPC endpoint.
type StatusError struct {
	Method     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("aria2 %s: http status %d", e.Method, e.StatusCode)
}
