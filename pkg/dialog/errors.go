// ABOUTME: Error taxonomy for the dialog client
// ABOUTME: InitializationError is fatal to stream starts; TransportError is retryable

package dialog

import "fmt"

// InitializationError reports that the backend rejected the initialization
// handshake or returned a malformed acknowledgement. Starting a stream is
// impossible until a later attempt succeeds.
type InitializationError struct {
	Message string
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("dialog initialization failed: %s", e.Message)
}

// TransportError reports a network or HTTP-level failure before or during a
// stream. Status is zero when the failure happened below the HTTP layer.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stream transport error: %v", e.Err)
	}
	return fmt.Sprintf("stream request failed with status %d", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
