package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates request bodies sent with "Content-Encoding: gzip" and
// compresses responses for clients that accept gzip.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasToken(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			body, err := newGzipBody(r.Body)
			if err != nil {
				utils.WriteError(w, "invalid gzip data", http.StatusBadRequest)
				return
			}
			r.Body = body
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1
		}

		w.Header().Add("Vary", "Accept-Encoding")
		if !hasToken(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		cw := newCompressWriter(w)
		defer cw.release()
		next.ServeHTTP(cw, r)
	})
}

// hasToken reports whether the comma separated header value lists token,
// ignoring case and quality parameters.
func hasToken(header, token string) bool {
	for _, part := range strings.Split(header, ",") {
		name, _, _ := strings.Cut(part, ";")
		if strings.EqualFold(strings.TrimSpace(name), token) {
			return true
		}
	}
	return false
}

// gzipBody inflates a request body with a pooled reader.
type gzipBody struct {
	src io.ReadCloser
	zr  *gzip.Reader
}

func newGzipBody(src io.ReadCloser) (*gzipBody, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(src); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}
	return &gzipBody{src: src, zr: zr}, nil
}

func (b *gzipBody) Read(p []byte) (int, error) {
	if b.zr == nil {
		return 0, io.ErrUnexpectedEOF
	}
	return b.zr.Read(p)
}

// Close returns the reader to the pool and closes the original body. It is
// safe to call more than once.
func (b *gzipBody) Close() error {
	if b.zr != nil {
		b.zr.Close()
		gzipReaders.Put(b.zr)
		b.zr = nil
	}
	return b.src.Close()
}

// compressWriter gzips the response body. A response without a body gets no
// Content-Encoding and no gzip footer.
type compressWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
	compressing bool
}

func newCompressWriter(w http.ResponseWriter) *compressWriter {
	zw := gzipWriters.Get().(*gzip.Writer)
	zw.Reset(w)
	return &compressWriter{ResponseWriter: w, zw: zw}
}

func (w *compressWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if statusCode >= http.StatusOK && statusCode != http.StatusNoContent && statusCode != http.StatusNotModified {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *compressWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if len(p) == 0 {
		return 0, nil
	}
	w.compressing = true
	return w.zw.Write(p)
}

// release flushes the gzip footer when a body was written and hands the
// writer back to the pool.
func (w *compressWriter) release() error {
	var err error
	if w.compressing {
		err = w.zw.Close()
	}
	w.zw.Reset(io.Discard)
	gzipWriters.Put(w.zw)
	return err
}
