package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
)

// apiErrorBody covers the error shapes the clinic API returns:
// {"detail": "..."}, {"error": "..."} and per-field {"field": ["msg", ...]}.
type apiErrorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// FromResponse maps a non-2xx API response to an AppError.
//   - 400 → Validation (with the first field when the body is a field map)
//   - 401 → Unauthorized
//   - 403 → Forbidden
//   - 404 → NotFound
//   - 409 → Conflict
//   - anything else → Upstream
func FromResponse(status int, body []byte) *AppError {
	message, field := decodeAPIMessage(body)

	code := ErrCodeUpstream
	switch status {
	case http.StatusBadRequest:
		code = ErrCodeValidation
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusForbidden:
		code = ErrCodeForbidden
	case http.StatusNotFound:
		code = ErrCodeNotFound
	case http.StatusConflict:
		code = ErrCodeConflict
	}
	if message == "" {
		message = defaultMessage(code, status)
	}
	return &AppError{Code: code, Message: message, Field: field, Status: status}
}

func decodeAPIMessage(body []byte) (message, field string) {
	if len(body) == 0 {
		return "", ""
	}
	var known apiErrorBody
	if err := json.Unmarshal(body, &known); err == nil {
		if known.Detail != "" {
			return known.Detail, ""
		}
		if known.Error != "" {
			return known.Error, ""
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return "", ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var msgs []string
		if err := json.Unmarshal(fields[k], &msgs); err == nil && len(msgs) > 0 {
			if k == "non_field_errors" {
				return strings.Join(msgs, " "), ""
			}
			return k + ": " + strings.Join(msgs, " "), k
		}
		var msg string
		if err := json.Unmarshal(fields[k], &msg); err == nil && msg != "" {
			return k + ": " + msg, k
		}
	}
	return "", ""
}

func defaultMessage(code ErrorCode, status int) string {
	switch code {
	case ErrCodeValidation:
		return "The request was rejected by the server."
	case ErrCodeUnauthorized:
		return "Authentication required."
	case ErrCodeForbidden:
		return "You do not have permission to perform this action."
	case ErrCodeNotFound:
		return "Resource not found"
	case ErrCodeConflict:
		return "The resource changed; reload and try again."
	default:
		return "Clinic API error (" + http.StatusText(status) + ")"
	}
}

// MapTransportError maps request-level failures (timeouts, cancellations,
// connection errors) to AppError instances. AppErrors are returned unchanged.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: "Clinic API unreachable",
		Cause:   err,
	}
}
