package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/jekabolt/salesboard/internal/dashboard"
	"github.com/jekabolt/salesboard/internal/entity"
	gerr "github.com/jekabolt/salesboard/internal/errors"
)

// ErrResponse is the body of every failed request.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrInvalidRequest is a 400 for bodies that fail to decode or validate.
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

const upstreamFailed = "upstream query failed"

// unavailable are the 503 causes whose message is safe to return as is.
var unavailable = []error{gerr.ErrNoSnapshot, gerr.ErrWarehouseDisabled, gerr.ErrStorageUnavailable}

// ErrFromError maps err to its status code. Internal details of 5xx errors
// are logged, not returned.
func ErrFromError(r *http.Request, err error) render.Renderer {
	code := gerr.HTTPStatus(err)
	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     http.StatusText(code),
		ErrorText:      err.Error(),
	}
	if code >= http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		resp.ErrorText = publicText(err)
	}
	return resp
}

func publicText(err error) string {
	for _, e := range unavailable {
		if errors.Is(err, e) {
			return e.Error()
		}
	}
	return upstreamFailed
}

type statusResponse struct {
	OK bool      `json:"ok"`
	TS time.Time `json:"ts"`
}

func (statusResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

// DashboardResponse is the current snapshot plus the outcome of the latest refresh.
type DashboardResponse struct {
	*dashboard.Snapshot
	LastError string     `json:"last_error,omitempty"`
	ErrorAt   *time.Time `json:"error_at,omitempty"`
}

func newDashboardResponse(st dashboard.State) *DashboardResponse {
	resp := &DashboardResponse{Snapshot: st.Snapshot}
	if st.LastError != nil {
		resp.LastError = publicText(st.LastError)
		at := st.ErrorAt
		resp.ErrorAt = &at
	}
	return resp
}

func (*DashboardResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

type monthToDateResponse struct {
	Month entity.Month `json:"month"`
	*entity.MonthToDate
}

func (*monthToDateResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

type repTableResponse struct {
	Month entity.Month       `json:"month"`
	Reps  []entity.RankedRep `json:"reps"`
}

func (*repTableResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

type highlightsResponse struct {
	Month entity.Month `json:"month"`
	*entity.Highlights
}

func (*highlightsResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

type salesLogResponse struct {
	dashboard.SalesLog
	AsOf time.Time `json:"as_of"`
}

func (*salesLogResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

type targetsResponse struct {
	Month entity.Month       `json:"month"`
	Rows  []entity.TargetRow `json:"rows"`
}

func (*targetsResponse) Render(http.ResponseWriter, *http.Request) error { return nil }

type upsertResponse struct {
	OK    bool         `json:"ok"`
	Month entity.Month `json:"month"`
	Count int          `json:"count"`
}

func (*upsertResponse) Render(http.ResponseWriter, *http.Request) error { return nil }
