package httpapi

import (
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/decksite-ingest/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "decksite-ingest"
)

// envelope follows the Google JSON style guide: exactly one of Data or
// Error is set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	sentinel   error
	HTTPStatus int
	Reason     string
	Status     string
}

// errorClasses is checked in order; the first sentinel matched by errors.Is
// decides the response.
var errorClasses = []errorClass{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrBatchRunning, http.StatusConflict, "batchRunning", "ABORTED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	{usecase.ErrSchema, http.StatusBadGateway, "upstreamSchema", "UNAVAILABLE"},
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.sentinel) {
			return c
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	body.APIVersion = googleAPIVersion
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	c := classify(err)
	msg := err.Error()
	if c.HTTPStatus == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeFailure(w, c, msg)
}

func writeFailure(w http.ResponseWriter, c errorClass, msg string) {
	writeJSON(w, c.HTTPStatus, envelope{Error: &errorBody{
		Code:    c.HTTPStatus,
		Message: msg,
		Status:  c.Status,
		Errors:  []errorItem{{Domain: errorDomain, Reason: c.Reason, Message: msg}},
	}})
}
