// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter records the status code and body size of a response so the
// access log can report them after the handler returns. Bodies are never
// retained.
type responseWriter struct {
	http.ResponseWriter

	// status stays zero until the handler writes a header or a body.
	status      int
	wroteHeader bool
	size        int
}

// WriteHeader records statusCode and forwards it once. Repeated calls are
// ignored, matching [http.ResponseWriter].
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write implies a 200 status when no header was written yet.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
