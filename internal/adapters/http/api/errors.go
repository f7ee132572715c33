package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/cubestand/internal/adapters/federation"
	service "github.com/okian/cubestand/internal/app"
	"github.com/okian/cubestand/internal/domain/record"
)

// Error codes returned in error bodies.
const (
	CodeInvalidID      = "invalid_id"
	CodeNotFound       = "not_found"
	CodeNoRecords      = "no_records"
	CodeInvalidPayload = "invalid_payload"
	CodeUpstream       = "upstream_error"
	CodeTimeout        = "timeout"
)

// classify maps a query error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return http.StatusBadRequest, CodeInvalidID
	case errors.Is(err, federation.ErrCompetitorNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, record.ErrNoRecordsFound):
		return http.StatusNotFound, CodeNoRecords
	case errors.Is(err, record.ErrInvalidPayload):
		return http.StatusBadGateway, CodeInvalidPayload
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusBadGateway, CodeUpstream
	}
}

// writeQueryError reports a failed query. A request abandoned by the client
// gets statusClientClosed and no body.
func writeQueryError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) {
		w.WriteHeader(statusClientClosed)
		return
	}
	status, code := classify(err)
	writeError(w, status, code, err)
}
