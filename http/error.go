package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/hlog"

	"github.com/quantonganh/codebinge"
)

const internalErrorMessage = "Internal server error"

type appHandler func(w http.ResponseWriter, r *http.Request) error

// Error parse HTTP error and write to header and body
func (s *Server) Error(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		code := codebinge.ErrorCode(err)
		status := errorStatus(code)

		message := codebinge.ErrorMessage(err)
		if status >= http.StatusInternalServerError {
			message = serverErrorMessage(err)
		}

		if status >= http.StatusInternalServerError {
			hlog.FromRequest(r).Error().Err(err).Str("code", code).Msg("request failed")
			sentry.CaptureException(err)
		} else {
			hlog.FromRequest(r).Info().Err(err).Str("code", code).Msg("request rejected")
		}

		writeJSONResponse(w, status, map[string]string{
			"error": message,
		})
	}
}

// serverErrorMessage keeps messages set on a codebinge.Error and hides
// everything else, such as driver errors.
func serverErrorMessage(err error) string {
	var e *codebinge.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return internalErrorMessage
}

func errorStatus(code string) int {
	switch code {
	case codebinge.ErrInvalid:
		return http.StatusBadRequest
	case codebinge.ErrUnauthorized:
		return http.StatusUnauthorized
	case codebinge.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(response)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &codebinge.Error{Code: codebinge.ErrInvalid, Message: "Invalid request body", Err: err}
	}
	return nil
}
