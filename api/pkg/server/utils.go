package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
)

const (
	maxRequestBody  = 1 << 20
	requestIDHeader = "X-Request-ID"
)

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// requestLoggerMiddleware puts a request scoped logger on the context so
// log.Ctx calls further down carry the request ID and the route variables.
// A caller supplied X-Request-ID is kept, otherwise one is generated.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = system.GenerateRequestID()
		}
		w.Header().Set(requestIDHeader, requestID)

		logCtx := log.Logger.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path)
		for key, value := range mux.Vars(r) {
			logCtx = logCtx.Str(key, value)
		}
		logger := logCtx.Logger()

		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

func errorLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := NewLoggingResponseWriter(w)

		next.ServeHTTP(lrw, r)

		if lrw.statusCode >= 400 {
			log.Ctx(r.Context()).Error().
				Int("status", lrw.statusCode).
				Dur("duration", time.Since(start)).
				Msg("request failed")
		}
	})
}

// writeCreated answers 201 with the new resource location, the wrapper still
// encodes the body
func writeCreated(rw http.ResponseWriter, location string) {
	rw.Header().Set("Content-Type", "application/json")
	rw.Header().Set("Location", location)
	rw.WriteHeader(http.StatusCreated)
}

func decodeBody(r *http.Request, into any) *system.HTTPError {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	if err := decoder.Decode(into); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return system.NewHTTPError400("failed to decode request body: " + err.Error())
	}
	return nil
}

// queryInt returns fallback when the parameter is absent
func queryInt(r *http.Request, name string, fallback int) (int, *system.HTTPError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, system.NewHTTPError400(name + " must be a non-negative integer")
	}
	return value, nil
}
