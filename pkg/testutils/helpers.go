package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/nimeshabuddhika/terabox-resolver/pkg/common"
)

// Do sends a request straight into handler and returns the recorded response.
func Do(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	t.Logf("Request %s %s", method, target)
	handler.ServeHTTP(rec, req)
	t.Logf("Response %s %s: Status %d", method, target, rec.Code)
	return rec
}

func GetTraceId(rec *httptest.ResponseRecorder) string {
	return rec.Header().Get(pkg.HeaderTraceId)
}

func DecodeSuccess(r io.Reader) (common.APIResponse, error) {
	var out common.APIResponse
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func DecodeError(r io.Reader) (pkg.ErrorResponse, error) {
	var out pkg.ErrorResponse
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Serve runs a prepared request through handler.
func Serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
