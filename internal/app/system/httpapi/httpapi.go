// Package httpapi provides JSON response helpers for the BrainCache API.
//
// Every handler responds with the same envelope:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": {"kind": "...", "message": "..."}}
//
// Error kinds form a small, stable taxonomy the SPA switches on:
// validation_error, unauthorized, forbidden, not_found, conflict,
// internal_error. Forbidden and NotFound deliberately share the same
// generic message for private resources so responses never reveal
// whether a resource exists.
package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Error kinds.
const (
	KindValidation   = "validation_error"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindInternal     = "internal_error"
)

// GenericDenied is the uniform message for both forbidden and missing
// private resources.
const GenericDenied = "you don't have access to this resource"

// Envelope is the standard response body.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data,omitempty"`
	Error   *APIErr `json:"error,omitempty"`
}

// APIErr carries the error kind and a user-facing message.
type APIErr struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 response with data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent writes a 200 response with no data payload.
// (200 with an empty envelope rather than 204 so the SPA always gets JSON.)
func NoContent(w http.ResponseWriter) {
	write(w, http.StatusOK, Envelope{Success: true})
}

// Validation writes a 400 validation error.
func Validation(w http.ResponseWriter, msg string) {
	write(w, http.StatusBadRequest, Envelope{Error: &APIErr{Kind: KindValidation, Message: msg}})
}

// Unauthorized writes a 401 error.
func Unauthorized(w http.ResponseWriter) {
	write(w, http.StatusUnauthorized, Envelope{Error: &APIErr{Kind: KindUnauthorized, Message: "sign in required"}})
}

// Forbidden writes a 403 error with the uniform access-denied message.
func Forbidden(w http.ResponseWriter) {
	write(w, http.StatusForbidden, Envelope{Error: &APIErr{Kind: KindForbidden, Message: GenericDenied}})
}

// NotFound writes a 404 error. Use for public lookups (share tokens) where
// existence is not a secret; private resources should use Forbidden.
func NotFound(w http.ResponseWriter, msg string) {
	write(w, http.StatusNotFound, Envelope{Error: &APIErr{Kind: KindNotFound, Message: msg}})
}

// Conflict writes a 409 error.
func Conflict(w http.ResponseWriter, msg string) {
	write(w, http.StatusConflict, Envelope{Error: &APIErr{Kind: KindConflict, Message: msg}})
}

// ServerError logs the underlying error and writes a 500 with a generic
// message. The real error never reaches the client.
func ServerError(w http.ResponseWriter, log *zap.Logger, what string, err error) {
	log.Error(what, zap.Error(err))
	write(w, http.StatusInternalServerError, Envelope{Error: &APIErr{Kind: KindInternal, Message: "something went wrong"}})
}

// Decode parses a JSON request body into v, limiting the body size.
func Decode(r *http.Request, v any, maxBytes int64) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
