package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strconv"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	pnet "github.com/Vagvedi/gitrekt/internal/platform/net"
)

// Envelope wraps every JSON body the API writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Message    string         `json:"message,omitempty"`
	Field      string         `json:"field,omitempty"`
	RetryAfter int            `json:"retry_after,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func envelope(r *stdhttp.Request, status int) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
	}
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	env := envelope(r, stdhttp.StatusOK)
	env.Data = data
	JSON(w, stdhttp.StatusOK, env)
}

// short error labels, anything else uses the status text
var labelByCode = map[perr.ErrorCode]string{
	perr.ErrorCodeValidation:      "Validation error",
	perr.ErrorCodeJSON:            "Validation error",
	perr.ErrorCodeNotFound:        "Not found",
	perr.ErrorCodeTooManyRequests: "Rate limited",
	perr.ErrorCodeTimeout:         "Timeout",
	perr.ErrorCodeUnavailable:     "Service unavailable",
	perr.ErrorCodeUnknown:         "Internal server error",
	perr.ErrorCodePanic:           "Internal server error",
	perr.ErrorCodeDB:              "Internal server error",
}

// RespondError maps err onto its status and writes the error envelope
// error is a short label and message the caller facing text, a Retry-After
// header already set on w is echoed as retry_after
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	env := envelope(r, status)
	env.Code, env.Message, env.Field = wr.Code, wr.Message, wr.Field
	env.Error = labelByCode[wr.Code]
	if env.Error == "" {
		env.Error = stdhttp.StatusText(status)
	}
	if secs, err := strconv.Atoi(w.Header().Get("Retry-After")); err == nil && secs > 0 {
		env.RetryAfter = secs
	}
	JSON(w, status, env)
}

// Response is what return-style handlers produce
// an error Body picks its own status, Header is copied before writing
// Raw writes Body as the whole JSON document instead of under data
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
	Raw    bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	if resp.Raw {
		JSON(w, status, resp.Body)
		return
	}
	env := envelope(r, status)
	env.Data = resp.Body
	JSON(w, status, env)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Document returns a 200 response that writes data as the top level body
func Document(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data, Raw: true} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
