// Package apperr defines the error taxonomy shared between the client and the
// remote gateway. The numeric codes are a stable cross-process contract and
// must not be renumbered.
package apperr

import "fmt"

// Kind is the semantic failure kind. Every error raised by the core carries
// one, and every remote failure response is translated into one.
type Kind int

const (
	BadRequest Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Timeout
	Conflict
	UpdateRequired
	Internal
	BadGateway
	ServiceUnavailable
	GatewayTimeout
)

var codes = map[Kind]int{
	BadRequest:         400,
	Unauthorized:       401,
	Forbidden:          403,
	NotFound:           404,
	Timeout:            408,
	Conflict:           409,
	UpdateRequired:     426,
	Internal:           500,
	BadGateway:         502,
	ServiceUnavailable: 503,
	GatewayTimeout:     504,
}

// Code returns the numeric code for the kind.
func (k Kind) Code() int {
	if c, ok := codes[k]; ok {
		return c
	}
	return 500
}

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad request"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not found"
	case Timeout:
		return "timeout"
	case Conflict:
		return "conflict"
	case UpdateRequired:
		return "update required"
	case Internal:
		return "internal error"
	case BadGateway:
		return "bad gateway"
	case ServiceUnavailable:
		return "temporarily unavailable"
	case GatewayTimeout:
		return "gateway timeout"
	default:
		return "internal error"
	}
}

// FromCode translates a numeric code into a kind. Unrecognized codes map to
// Internal.
func FromCode(code int) Kind {
	for k, c := range codes {
		if c == code {
			return k
		}
	}
	return Internal
}

// Error is a user-facing failure with semantic kind information.
type Error struct {
	Kind    Kind
	Message string
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// FromResponse translates a remote failure response into a local error.
func FromResponse(code int, message string) *Error {
	return &Error{Kind: FromCode(code), Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Code returns the numeric code of the error's kind.
func (e *Error) Code() int {
	return e.Kind.Code()
}

// ExitCode returns the process exit status for the error: client-side
// failures (4xx) exit 2, server-side and internal failures (5xx) exit 1.
func (e *Error) ExitCode() int {
	if e.Code() >= 500 {
		return 1
	}
	return 2
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
