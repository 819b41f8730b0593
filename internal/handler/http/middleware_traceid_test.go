package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/utils"
)

// traceRequest sends one request through withTraceID. The downstream handler
// writes a log entry through the request logger, which is returned decoded.
func traceRequest(t *testing.T, header string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	h := &Handler{
		logger:   &logger.Logger{Logger: zerolog.New(&buf)},
		traceIDs: utils.NewUUIDGenerator(),
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	if header != "" {
		req.Header.Set(traceIDHeader, header)
	}
	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return rr, entry
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		wantEchoed    bool
		wantGenerated bool
	}{
		{name: "client trace ID is reused", header: "checkout-42", wantEchoed: true},
		{name: "uuid from client", header: "550e8400-e29b-41d4-a716-446655440000", wantEchoed: true},
		{name: "missing header", header: "", wantGenerated: true},
		{name: "oversized header is replaced", header: strings.Repeat("x", maxTraceIDLength+1), wantGenerated: true},
		{name: "header at the limit is kept", header: strings.Repeat("x", maxTraceIDLength), wantEchoed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, entry := traceRequest(t, tt.header)

			traceID := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, traceID)
			assert.Equal(t, http.StatusTeapot, rr.Code)
			assert.Equal(t, traceID, entry["trace_id"])

			if tt.wantEchoed {
				assert.Equal(t, tt.header, traceID)
			}
			if tt.wantGenerated {
				_, err := uuid.Parse(traceID)
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTraceID_GeneratedIDsAreUnique(t *testing.T) {
	h := &Handler{logger: logger.Nop(), traceIDs: utils.NewUUIDGenerator()}
	mw := h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	const n = 50
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			mu.Lock()
			seen[rr.Header().Get(traceIDHeader)] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}
