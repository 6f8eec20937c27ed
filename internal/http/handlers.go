package httpx

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/turnos-app/turnos/internal/errors"
	"github.com/turnos-app/turnos/internal/ports"
	"github.com/turnos-app/turnos/internal/router"
	"github.com/turnos-app/turnos/internal/service"
)

// ClinicFactory returns the clinic API bound to one session. nav receives the
// login destination when the session cannot be recovered.
type ClinicFactory func(store *service.SessionStore, nav ports.Navigator) ports.ClinicAPI

// clinicHandlers is shared by the role handler groups.
type clinicHandlers struct {
	Clinic ClinicFactory
	Dest   router.Destinations
	Logger *slog.Logger
	Now    func() time.Time
}

func (h *clinicHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *clinicHandlers) today() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// api returns the request's clinic API. Callers are behind the Sessions middleware.
func (h *clinicHandlers) api(r *http.Request) ports.ClinicAPI {
	st, _ := requestStateFrom(r.Context())
	return h.Clinic(st.store, st.nav)
}

// fail writes err, unless the gateway already asked to navigate away.
func (h *clinicHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if dest, ok := NavigatorFromContext(r.Context()).Destination(); ok {
		WriteNavigation(w, r, dest, h.Dest.Login)
		return
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "error", err, "code", apperrors.GetCode(err))
	} else {
		h.logger().DebugContext(r.Context(), "request rejected",
			"path", r.URL.Path, "error", err, "code", apperrors.GetCode(err))
	}
	WriteAppError(w, err)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField("id", "id must be a positive integer")
	}
	return id, nil
}

// queryID parses an optional positive id query parameter; absent means 0.
func queryID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField(name, name+" must be a positive integer")
	}
	return id, nil
}

// queryPage parses the optional page parameter; absent means 1.
func queryPage(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apperrors.ValidationField("page", "page must be a positive integer")
	}
	return page, nil
}

// invalid turns a model validation error into a 400.
func invalid(err error) error {
	return apperrors.Validation(err.Error())
}
