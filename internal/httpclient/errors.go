package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind partitions fetch failures for the API layer.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_url"  // bad client input, no request sent
	KindHTTP         ErrorKind = "http_error"   // remote answered with an error status
	KindConnectivity ErrorKind = "connectivity" // no usable response at all
	KindInternal     ErrorKind = "internal"     // request construction or other local failure
)

// FetchError is the single error type the fetch stage produces. Message is
// the user-facing text that ends up in the API error payload.
type FetchError struct {
	Kind    ErrorKind
	Status  int // set for KindHTTP only
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

func invalidInput(msg string) *FetchError {
	return &FetchError{Kind: KindInvalidInput, Message: msg}
}

func httpStatus(status int) *FetchError {
	return &FetchError{
		Kind:    KindHTTP,
		Status:  status,
		Message: fmt.Sprintf("HTTP error %d: %s", status, http.StatusText(status)),
	}
}

// classify maps a transport error to a connectivity FetchError with a
// message specific enough to debug without exposing Go internals.
func classify(err error) *FetchError {
	connectivity := func(msg string) *FetchError {
		return &FetchError{Kind: KindConnectivity, Message: msg}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return connectivity("request timed out")
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return connectivity("request timed out")
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return connectivity("DNS lookup failed")
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "tls") || strings.Contains(errMsg, "TLS"):
		return connectivity("TLS handshake failed")
	case strings.Contains(errMsg, "certificate") || strings.Contains(errMsg, "x509"):
		return connectivity("certificate error")
	case strings.Contains(errMsg, "connection refused"):
		return connectivity("connection refused")
	case strings.Contains(errMsg, "connection reset"):
		return connectivity("connection reset")
	case strings.Contains(errMsg, "no such host"):
		return connectivity("host not found")
	case strings.Contains(errMsg, "network is unreachable"):
		return connectivity("network unreachable")
	case strings.Contains(errMsg, "unsupported protocol") || strings.Contains(errMsg, "missing protocol"):
		return &FetchError{Kind: KindInternal, Message: "request could not be constructed"}
	}

	return connectivity("no response from server")
}
