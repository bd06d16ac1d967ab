package gh

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// gqlCall is one recorded request to the fake upstream.
type gqlCall struct {
	Query     string
	Variables map[string]interface{}
}

// fakeUpstream is an in-process GraphQL endpoint. It records every call
// so tests can assert exact call counts and mutation payloads.
type fakeUpstream struct {
	t       *testing.T
	mu      sync.Mutex
	calls   []gqlCall
	respond func(call gqlCall) string
	srv     *httptest.Server
}

func newFakeUpstream(t *testing.T, respond func(gqlCall) string) *fakeUpstream {
	f := &fakeUpstream{t: t, respond: respond}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		// assert, not require: this runs on the server goroutine.
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		call := gqlCall{Query: body.Query, Variables: body.Variables}
		f.mu.Lock()
		f.calls = append(f.calls, call)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, f.respond(call))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) client() *Client {
	return New("test-token", discardLogger(), WithEndpoint(f.srv.URL))
}

func (f *fakeUpstream) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// callsMatching returns the recorded calls whose query contains substr.
func (f *fakeUpstream) callsMatching(substr string) []gqlCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gqlCall
	for _, c := range f.calls {
		if strings.Contains(c.Query, substr) {
			out = append(out, c)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// errorBody builds a GraphQL error response.
func errorBody(message string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"data":   nil,
		"errors": []map[string]string{{"message": message}},
	})
	return string(body)
}

// dataBody builds a GraphQL success response. It may run on the server
// goroutine, so it reports marshal failures without aborting.
func dataBody(t *testing.T, data interface{}) string {
	body, err := json.Marshal(map[string]interface{}{"data": data})
	assert.NoError(t, err)
	return string(body)
}
