package nasne

import "fmt"

// TransportError is returned when the device could not be reached or did not answer with a readable 2xx response.
type TransportError struct {
	Address    string
	Path       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s%s failed with status %d", e.Address, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("request %s%s failed: %v", e.Address, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the body of a device response does not match the expected JSON shape.
type DecodeError struct {
	Address string
	Path    string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response of %s%s: %v", e.Address, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
