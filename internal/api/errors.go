package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Kind tags the four failure shapes a call can produce.
type Kind int

const (
	// KindUnauthenticated: no token stored, nothing was sent.
	KindUnauthenticated Kind = iota + 1
	// KindValidation: the backend rejected specific fields.
	KindValidation
	// KindGeneral: the backend (or a malformed response) produced one message.
	KindGeneral
	// KindNetwork: the request never got a response.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindValidation:
		return "validation"
	case KindGeneral:
		return "general"
	case KindNetwork:
		return "network"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is implemented by every error the client returns.
type Error interface {
	error
	Kind() Kind
	// Message is the text shown to the user.
	Message() string
}

// UnauthenticatedError is returned by authenticated operations when the
// session holds no token.
type UnauthenticatedError struct{}

func (*UnauthenticatedError) Kind() Kind { return KindUnauthenticated }
func (*UnauthenticatedError) Message() string {
	return "Authentication token not found. Please log in."
}
func (e *UnauthenticatedError) Error() string { return e.Message() }

// FieldError carries the backend messages for one field.
type FieldError struct {
	Field    string
	Messages []string
}

// ValidationError is a non-2xx response whose body maps field names to messages.
// Fields keep the order the backend sent them in.
type ValidationError struct {
	Status int
	Fields []FieldError
}

func (*ValidationError) Kind() Kind { return KindValidation }

func (e *ValidationError) Message() string {
	parts := lo.FlatMap(e.Fields, func(f FieldError, _ int) []string { return f.Messages })
	return strings.Join(parts, ", ")
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d): %s", e.Status, e.Message())
}

// Field returns the messages for name, if the backend reported any.
func (e *ValidationError) Field(name string) ([]string, bool) {
	f, ok := lo.Find(e.Fields, func(f FieldError) bool { return f.Field == name })
	if !ok {
		return nil, false
	}
	return f.Messages, true
}

// GeneralError is a failure with a single message: the backend's "detail",
// the HTTP status text of an unparsable error body, or a local protocol error.
type GeneralError struct {
	Status int
	Text   string
}

func (*GeneralError) Kind() Kind        { return KindGeneral }
func (e *GeneralError) Message() string { return e.Text }
func (e *GeneralError) Error() string {
	if e.Status == 0 {
		return e.Text
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Text)
}

// NetworkError wraps a failure that happened before any response arrived.
type NetworkError struct {
	Err error
}

func (*NetworkError) Kind() Kind        { return KindNetwork }
func (e *NetworkError) Message() string { return e.Err.Error() }
func (e *NetworkError) Error() string   { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error   { return e.Err }

// AsError finds the client error in err's chain.
func AsError(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Describe renders err for display: the general message, or every field
// message joined with ", ", or fallback when neither says anything.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	e, ok := AsError(err)
	if !ok {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return fallback
	}
	if msg := e.Message(); msg != "" {
		return msg
	}
	return fallback
}

// FieldMessage returns "<label>: <messages>" for the first listed field the
// backend rejected. Each entry is a field name and its label.
func FieldMessage(err error, fields ...[2]string) (string, bool) {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return "", false
	}
	for _, f := range fields {
		if msgs, ok := ve.Field(f[0]); ok {
			return fmt.Sprintf("%s: %s", f[1], strings.Join(msgs, ", ")), true
		}
	}
	return "", false
}

// parseErrorBody turns a non-2xx response into a ValidationError or GeneralError.
func parseErrorBody(status int, statusText string, body []byte) error {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return &GeneralError{Status: status, Text: statusText}
	}

	parsed := gjson.ParseBytes(body)
	if detail := parsed.Get("detail"); detail.Type == gjson.String {
		return &GeneralError{Status: status, Text: detail.String()}
	}

	if parsed.IsArray() {
		return &GeneralError{Status: status, Text: strings.Join(stringsOf(parsed), ", ")}
	}
	if !parsed.IsObject() {
		if text := parsed.String(); text != "" {
			return &GeneralError{Status: status, Text: text}
		}
		return &GeneralError{Status: status, Text: statusText}
	}

	var fields []FieldError
	parsed.ForEach(func(key, value gjson.Result) bool {
		fields = append(fields, FieldError{Field: key.String(), Messages: stringsOf(value)})
		return true
	})
	if len(fields) == 0 {
		return &GeneralError{Status: status, Text: statusText}
	}
	return &ValidationError{Status: status, Fields: fields}
}

func stringsOf(value gjson.Result) []string {
	if !value.IsArray() {
		return []string{value.String()}
	}
	var out []string
	value.ForEach(func(_, item gjson.Result) bool {
		out = append(out, stringsOf(item)...)
		return true
	})
	return out
}
