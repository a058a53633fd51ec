// Package response provides the JSON envelope used by every API endpoint:
// a data field on success and an error field on failure.
package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/agentstation/boxoffice/pkg/errors"
)

// Response is the envelope written by every endpoint.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is an API error with a stable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing useful to do with an encode error
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Created writes a successful response with 201 status.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// Conflict writes a 409 response for a rejected transaction.
func Conflict(w http.ResponseWriter, code, message, details string) {
	JSON(w, http.StatusConflict, Fail(code, message, details))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Rate limit exceeded", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail("SERVICE_UNAVAILABLE", "Service unavailable", message))
}

// ErrorFromType maps typed errors to HTTP responses. Ledger rejections
// are 409 with a code per condition; lookups are 404; bad input is 400.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		notFound     *errors.NotFoundError
		validation   *errors.ValidationError
		parse        *errors.ParseError
		quantity     *errors.QuantityError
		limit        *errors.HoldingLimitError
		soldOut      *errors.SoldOutError
		stock        *errors.InsufficientStockError
		noHolding    *errors.NoSuchHoldingError
		insufficient *errors.InsufficientHoldingError
	)

	switch {
	case errors.As(err, &notFound):
		NotFound(w, notFound.Error(), "")
	case errors.As(err, &validation):
		BadRequest(w, validation.Error(), "")
	case errors.As(err, &parse):
		BadRequest(w, parse.Error(), "")
	case errors.As(err, &quantity):
		JSON(w, http.StatusBadRequest, Fail("INVALID_QUANTITY", quantity.Error(), ""))
	case errors.As(err, &limit):
		Conflict(w, "HOLDING_LIMIT", limit.Error(), "limit="+strconv.Itoa(limit.Limit))
	case errors.As(err, &soldOut):
		Conflict(w, "SOLD_OUT", soldOut.Error(), "")
	case errors.As(err, &stock):
		Conflict(w, "INSUFFICIENT_STOCK", stock.Error(), "remaining="+strconv.Itoa(stock.Remaining))
	case errors.As(err, &noHolding):
		Conflict(w, "NO_SUCH_HOLDING", noHolding.Error(), "")
	case errors.As(err, &insufficient):
		Conflict(w, "INSUFFICIENT_HOLDING", insufficient.Error(), "held="+strconv.Itoa(insufficient.Held))
	default:
		InternalError(w, err)
	}
}
