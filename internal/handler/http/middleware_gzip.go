package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-item-custody/internal/utils"
)

var gzipReaders sync.Pool

// withGzipRequests inflates request bodies sent with Content-Encoding: gzip.
// Response compression is left to chi's Compress middleware.
func withGzipRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zr, err := acquireGzipReader(r.Body)
		if err != nil {
			utils.WriteError(w, "Invalid gzip data", http.StatusBadRequest)
			return
		}

		r.Body = &gzipBody{Reader: zr, raw: r.Body}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

func acquireGzipReader(src io.Reader) (*gzip.Reader, error) {
	if zr, ok := gzipReaders.Get().(*gzip.Reader); ok {
		if err := zr.Reset(src); err != nil {
			gzipReaders.Put(zr)
			return nil, err
		}
		return zr, nil
	}
	return gzip.NewReader(src)
}

// gzipBody returns its reader to the pool on Close. Close is safe to call
// more than once.
type gzipBody struct {
	*gzip.Reader
	raw    io.Closer
	closed bool
}

func (b *gzipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	b.Reader.Close()
	gzipReaders.Put(b.Reader)
	return b.raw.Close()
}
