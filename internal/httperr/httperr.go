// Package httperr carries the error taxonomy surfaced through the central
// reporting middleware: NotFound, ValidationFailed, StoreFailure and unknown
// routes. Authentication and ownership failures never reach it; the guards
// recover those into a redirect with a flash message.
package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindStore
)

type Error struct {
	Status  int
	Message string
	Kind    Kind
	Err     error // underlying cause, logged but never rendered
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Kind: KindNotFound}
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Kind: KindValidation}
}

func Store(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Kind: KindStore, Err: cause}
}

// Abort records the error on the context and stops the chain. The reporter
// middleware turns it into the response.
func Abort(ctx *gin.Context, err *Error) {
	_ = ctx.Error(err)
	ctx.Abort()
}
