package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tweeter/internal/logger"
)

// recordingStage appends its name to calls and passes the request on.
func recordingStage(name string, calls *[]string) Stage {
	return Stage{
		Name: name,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				*calls = append(*calls, name)
				next.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

func failingStage(name string, err error, calls *[]string) Stage {
	return Stage{
		Name: name,
		Wrap: func(http.Handler) HandlerFunc {
			return func(http.ResponseWriter, *http.Request) error {
				*calls = append(*calls, name)
				return err
			}
		},
	}
}

func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(buf)}
}

func TestCompose_RunsStagesInOrder(t *testing.T) {
	var calls []string
	p := Compose([]Stage{
		recordingStage("first", &calls),
		recordingStage("second", &calls),
		recordingStage("third", &calls),
	}, logger.Nop())

	assert.Equal(t, []string{"first", "second", "third"}, p.Stages())

	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third"}, calls)
	// nothing handled the request, so the terminal next answers 404
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Not Found","statusCode":404}`, rec.Body.String())
}

func TestCompose_StageErrorShortCircuits(t *testing.T) {
	var calls []string
	p := Compose([]Stage{
		recordingStage("first", &calls),
		failingStage("second", NewHTTPError(http.StatusTeapot, "short and stout"), &calls),
		recordingStage("third", &calls),
	}, logger.Nop())

	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"message":"short and stout","statusCode":418}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCompose_PlainErrorBecomes500WithItsMessage(t *testing.T) {
	var calls []string
	p := Compose([]Stage{failingStage("boom", errors.New("database is on fire"), &calls)}, logger.Nop())

	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"database is on fire","statusCode":500}`, rec.Body.String())
}

func TestCompose_RecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	p := Compose([]Stage{{
		Name: "panics",
		Wrap: func(http.Handler) HandlerFunc {
			return func(http.ResponseWriter, *http.Request) error {
				panic("unexpected")
			}
		},
	}}, bufferLogger(&buf))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error","statusCode":500}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic: unexpected")
	assert.Contains(t, buf.String(), `"sink":"error"`)
}

func TestCompose_AbortHandlerPanicPropagates(t *testing.T) {
	p := Compose([]Stage{{
		Name: "aborts",
		Wrap: func(http.Handler) HandlerFunc {
			return func(http.ResponseWriter, *http.Request) error {
				panic(http.ErrAbortHandler)
			}
		},
	}}, logger.Nop())

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		p.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestCompose_StagesIsACopy(t *testing.T) {
	p := Compose([]Stage{fallbackStage()}, logger.Nop())

	names := p.Stages()
	names[0] = "changed"

	assert.Equal(t, []string{StageFallback}, p.Stages())
}

func TestRenderError_LogsOnceAndSkipsStartedResponses(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, err := w.Write([]byte("partial"))
	require.NoError(t, err)

	renderError(w, httptest.NewRequest(http.MethodGet, "/x", nil), errors.New("late failure"), bufferLogger(&buf))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("late failure")))
}

func TestRoute_RendersWhenServedStandalone(t *testing.T) {
	h := Route(func(http.ResponseWriter, *http.Request) error {
		return NewHTTPError(http.StatusConflict, "taken").WithErrors(map[string]string{"email": "taken"})
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"taken","statusCode":409,"errors":{"email":"taken"}}`, rec.Body.String())
}

func TestRoute_HandsErrorToRequestContext(t *testing.T) {
	want := errors.New("handled upstream")
	h := Route(func(http.ResponseWriter, *http.Request) error { return want })

	r, rc := ensureRequestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, want, rc.takeErr())
	assert.Nil(t, rc.takeErr())
	assert.Zero(t, rec.Body.Len())
}
