// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter is a thin decorator around [http.ResponseWriter] that
// records the status code and the number of body bytes written, for the
// access log and for the error renderer.
//
// WriteHeader is forwarded to the underlying writer exactly once.
type responseWriter struct {
	http.ResponseWriter

	// status is the code of the first WriteHeader call, zero until then.
	status int

	wroteHeader bool

	// size is the running total of body bytes written.
	size int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write implicitly sends a 200 header when none was written yet.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Written reports whether the response header has already been sent.
func (w *responseWriter) Written() bool {
	return w.wroteHeader
}

// Status returns the status sent to the client. A handler that wrote
// nothing results in an implicit 200.
func (w *responseWriter) Status() int {
	if !w.wroteHeader {
		return http.StatusOK
	}
	return w.status
}

// Unwrap lets [http.ResponseController] reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// headerWritten reports whether w is known to have sent its header.
func headerWritten(w http.ResponseWriter) bool {
	ww, ok := w.(interface{ Written() bool })
	return ok && ww.Written()
}
