package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tweeter/internal/logger"
	"github.com/MKhiriev/go-tweeter/internal/utils"
	"github.com/rs/zerolog"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error
// instead of writing an error response itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Stage is one named step of the request pipeline.
//
// Wrap is called once, while the pipeline is composed, with the remainder of
// the pipeline as next. The returned function either calls next or returns
// an error; it must not do both.
type Stage struct {
	Name string
	Wrap func(next http.Handler) HandlerFunc
}

// Pipeline is a composed, immutable chain of stages.
type Pipeline struct {
	names   []string
	handler http.Handler
}

// Compose chains stages in the given order. The innermost next answers with
// the not-found envelope, and every error a stage returns is rendered by
// the terminal error handler at that stage's boundary.
func Compose(stages []Stage, log *logger.Logger) *Pipeline {
	var next http.Handler = boundary(func(http.ResponseWriter, *http.Request) error {
		return errNotFound
	}, log)

	for i := len(stages) - 1; i >= 0; i-- {
		next = boundary(stages[i].Wrap(next), log)
	}

	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}

	return &Pipeline{names: names, handler: next}
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.handler.ServeHTTP(w, r)
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	return append([]string(nil), p.names...)
}

// boundary adapts fn to http.Handler, rendering its error or panic.
func boundary(fn HandlerFunc, log *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			renderError(w, r, errInternal.WithCause(fmt.Errorf("panic: %v", rec)), log)
		}()

		if err := fn(w, r); err != nil {
			renderError(w, r, err, log)
		}
	})
}

// renderError is the terminal error handler. It logs err once to the error
// sink and writes the envelope unless the response has already started.
func renderError(w http.ResponseWriter, r *http.Request, err error, fallback *logger.Logger) {
	httpErr := toHTTPError(err)

	log := requestLogger(r, fallback).Sink(logger.SinkError)
	log.Err(err).
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Int("status", httpErr.StatusCode).
		Msg("request failed")

	if headerWritten(w) {
		return
	}

	if _, werr := utils.WriteJSON(w, httpErr, httpErr.StatusCode); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}

// requestLogger returns the request-scoped logger, or fallback when the
// logging stage has not attached one.
func requestLogger(r *http.Request, fallback *logger.Logger) *logger.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return &logger.Logger{Logger: *l}
	}
	if fallback == nil {
		return logger.Nop()
	}
	return fallback
}

// Route adapts a route handler to http.HandlerFunc. Inside the pipeline the
// error is handed back to the dispatch stage; a router served on its own
// renders it directly.
func Route(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		if rc, ok := RequestContextFrom(r.Context()); ok {
			rc.err = err
			return
		}
		renderError(w, r, err, nil)
	}
}
