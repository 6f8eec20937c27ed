package httpx

import (
	"context"
	"net/http"
	"sync"
)

// ResponseNavigator records the first destination requested while a request is
// being served. Handlers turn it into a response with WriteNavigation once the
// work that triggered it has returned.
type ResponseNavigator struct {
	mu   sync.Mutex
	dest string
}

// NewResponseNavigator returns an empty navigator.
func NewResponseNavigator() *ResponseNavigator { return &ResponseNavigator{} }

// Navigate implements ports.Navigator. Later calls do not override the first.
func (n *ResponseNavigator) Navigate(_ context.Context, destination string) {
	if destination == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dest == "" {
		n.dest = destination
	}
}

// Destination returns the recorded destination.
func (n *ResponseNavigator) Destination() (string, bool) {
	if n == nil {
		return "", false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dest, n.dest != ""
}

// WriteNavigation sends the client to dest. Browsers get a 303 redirect; API
// clients get a JSON body naming the destination, with 401 when dest is the
// login page and 403 otherwise.
func WriteNavigation(w http.ResponseWriter, r *http.Request, dest, loginPath string) {
	if IsBrowserRequest(r) {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}
	status, code := http.StatusForbidden, "insufficient_permissions"
	if dest == loginPath {
		status, code = http.StatusUnauthorized, "authentication_required"
	}
	WriteJSON(w, status, map[string]string{"error": code, "redirect_to": dest})
}
