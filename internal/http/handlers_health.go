package httpx

import "net/http"

// sessionCounter is implemented by registries that can report their size.
type sessionCounter interface {
	Len() int
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions *int   `json:"sessions,omitempty"`
}

// healthHandler answers readiness/liveness probes without touching a session.
// The active session count is included when the registry can report it.
func healthHandler(sessions SessionOpener) http.HandlerFunc {
	counter, _ := sessions.(sessionCounter)
	return func(w http.ResponseWriter, r *http.Request) {
		body := healthResponse{Status: "ok"}
		if counter != nil {
			n := counter.Len()
			body.Sessions = &n
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		WriteJSON(w, http.StatusOK, body)
	}
}
