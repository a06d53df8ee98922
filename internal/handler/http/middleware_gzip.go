package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Bookmark list payloads are JSON and shrink well under gzip. Pools keep
// per-request allocations down on a busy sync schedule.
var (
	gzipWriters = sync.Pool{
		New: func() any { return gzip.NewWriter(io.Discard) },
	}
	gzipReaders = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip inflates gzip request bodies and compresses responses for clients
// that advertise gzip support.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			zr := gzipReaders.Get().(*gzip.Reader)
			if err := zr.Reset(r.Body); err != nil {
				gzipReaders.Put(zr)
				http.Error(w, "malformed gzip body", http.StatusBadRequest)
				return
			}
			r.Body = &inflatedBody{Reader: zr}
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		next.ServeHTTP(&deflatedWriter{ResponseWriter: w, zw: zw}, r)
		zw.Close()
		gzipWriters.Put(zw)
	})
}

// inflatedBody returns the pooled reader when the request body is closed.
type inflatedBody struct {
	*gzip.Reader
}

func (b *inflatedBody) Close() error {
	err := b.Reader.Close()
	gzipReaders.Put(b.Reader)
	return err
}

// deflatedWriter routes the response body through the pooled gzip writer.
type deflatedWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *deflatedWriter) WriteHeader(status int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(status)
}

func (w *deflatedWriter) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}
