package volumio

import "fmt"

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("execute request %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	Endpoint string
	Status   int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.Status)
}

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode response %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
