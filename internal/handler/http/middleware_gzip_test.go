package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

// echoBody answers with the request body it received.
func echoBody(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("X-Content-Encoding", r.Header.Get("Content-Encoding"))
	_, _ = w.Write(b)
}

func TestWithGzipRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       func(t *testing.T) io.Reader
		encoding   string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "gzip body is inflated",
			body:       func(t *testing.T) io.Reader { return gzipped(t, `{"name":"lamp"}`) },
			encoding:   "gzip",
			wantStatus: http.StatusOK,
			wantBody:   `{"name":"lamp"}`,
		},
		{
			name:       "plain body passes through",
			body:       func(*testing.T) io.Reader { return strings.NewReader(`{"name":"lamp"}`) },
			wantStatus: http.StatusOK,
			wantBody:   `{"name":"lamp"}`,
		},
		{
			name:       "broken gzip",
			body:       func(*testing.T) io.Reader { return strings.NewReader("not gzip at all") },
			encoding:   "gzip",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Invalid gzip data"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/items/new", tt.body(t))
			if tt.encoding != "" {
				req.Header.Set("Content-Encoding", tt.encoding)
			}
			rr := httptest.NewRecorder()

			withGzipRequests(http.HandlerFunc(echoBody)).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
			assert.Empty(t, rr.Header().Get("X-Content-Encoding"))
		})
	}
}

func TestWithGzipRequests_ReaderReuse(t *testing.T) {
	h := withGzipRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		echoBody(w, r)
		require.NoError(t, r.Body.Close())
		require.NoError(t, r.Body.Close())
	}))

	for _, name := range []string{"lamp", "kettle", "teapot"} {
		req := httptest.NewRequest(http.MethodPost, "/items/new", gzipped(t, name))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, name, rr.Body.String())
	}
}

func TestRouter_CompressesJSONResponses(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail":"Not Found"}`, string(body))
}
