package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/goccy/go-json"
)

const internalErrorMessage = "Internal server error"

var errBodyTooLarge = errors.New("request body too large")

type errorBody struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// errorMessages overrides the client-facing text per error kind.
type errorMessages map[common.ErrorKind]string

var defaultMessages = errorMessages{
	common.KindValidation:     "Invalid request",
	common.KindConflict:       "Resource already exists",
	common.KindAuthentication: "Unauthorized",
	common.KindForbidden:      "Forbidden",
	common.KindNotFound:       "Not found",
	common.KindInternal:       internalErrorMessage,
}

func statusFor(kind common.ErrorKind) int {
	switch kind {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindConflict:
		return http.StatusConflict
	case common.KindAuthentication:
		return http.StatusUnauthorized
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// respondErr writes err as a JSON error body. Internal failures are logged
// in full and reported to the client with an opaque message.
func (s *HTTPServer) respondErr(w http.ResponseWriter, r *http.Request, err error, msgs errorMessages) {
	if errors.Is(err, errBodyTooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "Request body too large"})
		return
	}

	kind := common.KindOf(err)
	body := errorBody{Error: msgs[kind]}

	var ve *common.ValidationError
	if kind == common.KindValidation && errors.As(err, &ve) {
		body.Error = ve.Message
		body.Missing = ve.Missing
	}
	if body.Error == "" {
		body.Error = defaultMessages[kind]
	}

	ri := requestInfoFrom(r.Context())
	if kind == common.KindInternal {
		s.logger.Error(r.Context(), "request failed", "error", err, "request_id", ri.id)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "kind", kind.String(), "error", err, "request_id", ri.id)
	}

	writeJSON(w, statusFor(kind), body)
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return &common.ValidationError{Message: "Could not read request body"}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &common.ValidationError{Message: "Invalid JSON body"}
	}
	return nil
}
