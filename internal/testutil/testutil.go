// Package testutil provides a fake game API server for tests: it speaks the
// signed-URL request layout, hands out session tokens and dispatches
// per-method canned responses.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Handler produces the response for one fake API call. Params are the URL
// segments following the timestamp.
type Handler func(params []string) (status int, body string)

// Respond builds a Handler always answering 200 with a fixed body.
func Respond(body string) Handler {
	return func([]string) (int, string) {
		return http.StatusOK, body
	}
}

// RespondStatus builds a Handler always answering with a fixed status and
// an empty JSON list body.
func RespondStatus(status int) Handler {
	return func([]string) (int, string) {
		return status, "[]"
	}
}

// DropConnection is a special status: the fake server severs the TCP
// connection instead of answering, simulating a network failure.
const DropConnection = -1

// FakeAPI simulates the game API over httptest. Handlers are keyed by
// lowercase method name; methods without a handler answer 404. Session
// creation and ping are built in, and every dispatched call is counted.
type FakeAPI struct {
	Server *httptest.Server

	// FailSessions makes createsession answer without a session token,
	// the way the API rejects bad credentials.
	FailSessions bool

	mu       sync.Mutex
	handlers map[string]Handler
	calls    map[string]int
	sessions int
}

// NewFakeAPI starts a fake API server, torn down with the test.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	api := &FakeAPI{
		handlers: make(map[string]Handler),
		calls:    make(map[string]int),
	}
	api.Server = httptest.NewUnstartedServer(http.HandlerFunc(api.dispatch))
	// without keep-alives every request rides a fresh connection, so a
	// severed one can't make net/http transparently retry the GET and
	// inflate the per-method call counts
	api.Server.Config.SetKeepAlivesEnabled(false)
	api.Server.Start()
	t.Cleanup(api.Server.Close)
	return api
}

// URL returns the fake API's base URL.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Handle installs the handler for a method. The "json" response-type suffix
// is implied and must be left off.
func (f *FakeAPI) Handle(method string, handler Handler) {
	f.mu.Lock()
	f.handlers[strings.ToLower(method)] = handler
	f.mu.Unlock()
}

// Calls returns how many times a method has been dispatched, built-ins
// included.
func (f *FakeAPI) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[strings.ToLower(method)]
}

// Sessions returns how many session tokens have been issued.
func (f *FakeAPI) Sessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions
}

func (f *FakeAPI) dispatch(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) == 0 || !strings.HasSuffix(segments[0], "json") {
		http.NotFound(w, r)
		return
	}
	method := strings.TrimSuffix(segments[0], "json")

	f.mu.Lock()
	f.calls[method]++
	handler := f.handlers[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "ping":
		fmt.Fprint(w, `"Pong"`)
		return
	case "createsession":
		if f.FailSessions {
			fmt.Fprint(w, `{"ret_msg":"Invalid Developer Id","session_id":""}`)
			return
		}
		f.mu.Lock()
		f.sessions++
		session := fmt.Sprintf("session-%d", f.sessions)
		f.mu.Unlock()
		fmt.Fprintf(w, `{"ret_msg":"Approved","session_id":"%s","timestamp":""}`, session)
		return
	}

	if handler == nil {
		http.NotFound(w, r)
		return
	}
	// devID, signature, session and timestamp precede the params
	var params []string
	if len(segments) > 5 {
		params = segments[5:]
	}
	status, body := handler(params)
	if status == DropConnection {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
			}
		}
		return
	}
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}
