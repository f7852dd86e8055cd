package eas

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNeedsProvisioning is returned when the server answers 449. The
	// current policy key is no longer accepted.
	ErrNeedsProvisioning = errors.New("eas: device needs provisioning")

	// ErrAuthentication is returned for 401 and 403 responses. It is
	// never retried.
	ErrAuthentication = errors.New("eas: authentication failed")

	// ErrUnsupportedProtocol is returned when the server does not offer
	// the protocol version this client speaks.
	ErrUnsupportedProtocol = errors.New("eas: protocol version not supported by server")

	// ErrMissingItem is returned when a command response lacks the item
	// the request asked about.
	ErrMissingItem = errors.New("eas: item missing from response")
)

// ProtocolStatusError reports a non-success status carried inside a
// decoded response.
type ProtocolStatusError struct {
	Command string
	Status  int
}

func (e *ProtocolStatusError) Error() string {
	return fmt.Sprintf("eas: %s returned status %d", e.Command, e.Status)
}

// TransportError reports a failed HTTP exchange: a network failure or a
// status code without a dedicated meaning.
type TransportError struct {
	Command    string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("eas: %s: %v", e.Command, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("eas: %s: HTTP %d: %s", e.Command, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("eas: %s: HTTP %d", e.Command, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transient reports whether retrying the request later may succeed.
func (e *TransportError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500 || e.StatusCode == 429
}

// ProvisionError reports a failed provisioning handshake.
type ProvisionError struct {
	Step string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("eas: provisioning %s: %v", e.Step, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// IsTransient reports whether err (or any error in its chain) is a
// transport failure the caller should retry after a backoff.
func IsTransient(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Transient()
}

// IsAuthentication reports whether err was caused by rejected credentials.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNeedsProvisioning reports whether err asks for a new policy key.
func IsNeedsProvisioning(err error) bool {
	return errors.Is(err, ErrNeedsProvisioning)
}

// StatusOf returns the in-payload status of a ProtocolStatusError in the
// chain of err, or 0.
func StatusOf(err error) int {
	var pe *ProtocolStatusError
	if errors.As(err, &pe) {
		return pe.Status
	}
	return 0
}

// maxErrorBodyLen is the maximum number of bytes from a server response
// body included in error messages.
const maxErrorBodyLen = 200

// sanitizeResponseBody truncates and strips non-printable characters
// from an HTTP error body before it ends up in logs.
func sanitizeResponseBody(body []byte) string {
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen]
	}
	s := string(body)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' {
			return -1
		}
		if r == 0x7f {
			return -1
		}
		return r
	}, s)
}
