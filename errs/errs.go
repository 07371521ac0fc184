package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error so the HTTP layer can map it to a
// status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindPaymentGateway
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	// Code carries a provider diagnostic for payment-gateway errors
	// (e.g. a Stripe decline code). Empty otherwise.
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func PaymentGateway(code, message string, err error) *Error {
	return &Error{Kind: KindPaymentGateway, Message: message, Code: code, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, or KindInternal for anything untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusCode maps an error kind to the HTTP status the API contract fixes
// for it.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as the JSON body the API contract specifies.
// Internal and gateway errors keep their detail out of the response body.
func Respond(c *gin.Context, err error) {
	status := StatusCode(err)

	var e *Error
	if !errors.As(err, &e) {
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}

	body := gin.H{"message": e.Message}
	if e.Kind == KindPaymentGateway && e.Code != "" {
		body["code"] = e.Code
	}
	if e.Kind == KindInternal {
		body["message"] = "internal server error"
	}
	c.JSON(status, body)
}
