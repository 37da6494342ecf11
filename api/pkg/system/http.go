package system

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

// the sub path any API's are served over
const APISubPath = "/api/v1"

func GetAPIPath(path string) string {
	return fmt.Sprintf("%s%s", APISubPath, path)
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(err error) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
	}
}

func NewHTTPError400(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

func NewHTTPError403(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusForbidden,
		Message:    message,
	}
}

func NewHTTPError404(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func NewHTTPError500(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

// functions that understand they need to return a http error
type httpWrapper[T any] func(res http.ResponseWriter, req *http.Request) (T, *HTTPError)

// normal functions that return just an error
// which will be translated into a 500
type defaultWrapper[T any] func(res http.ResponseWriter, req *http.Request) (T, error)

// Wrapper encodes the handler result as JSON or writes the HTTPError status
func Wrapper[T any](handler httpWrapper[T]) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		data, err := handler(res, req)
		if err != nil {
			log.Ctx(req.Context()).Error().
				Str("path", req.URL.Path).
				Int("status", err.StatusCode).
				Msgf("error for route: %s", err.Error())
			statusCode := err.StatusCode
			if statusCode == 0 {
				statusCode = http.StatusInternalServerError
			}
			http.Error(res, err.Error(), statusCode)
			return
		}
		writeJSON(res, req, data)
	}
}

func DefaultWrapper[T any](handler defaultWrapper[T]) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		data, err := handler(res, req)
		if err != nil {
			log.Ctx(req.Context()).Error().
				Str("path", req.URL.Path).
				Msgf("error for route: %s", err.Error())
			http.Error(res, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(res, req, data)
	}
}

func writeJSON(res http.ResponseWriter, req *http.Request, data any) {
	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(data); err != nil {
		log.Ctx(req.Context()).Error().Msgf("error for json encoding: %s", err.Error())
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}

// NewRetryClient returns a client that retries on transport errors, 429 and 5xx
func NewRetryClient(retryMax int) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.Logger = stdlog.New(io.Discard, "", stdlog.LstdFlags)
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		log.Trace().
			Str(req.Method, req.URL.String()).
			Int("attempt", attempt).
			Msgf("")
	}
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if resp == nil {
			return true, err
		}
		log.Trace().
			Str(resp.Request.Method, resp.Request.URL.String()).
			Int("code", resp.StatusCode).
			Msgf("")
		// don't retry for auth errors
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, nil
	}
	return retryClient
}

// IdempotentOnly wraps retryClient so that only idempotent requests are
// retried. Other methods go out once over the same connection pool.
func IdempotentOnly(retryClient *retryablehttp.Client) *http.Client {
	return &http.Client{
		Transport: &idempotentTransport{
			retrying: &retryablehttp.RoundTripper{Client: retryClient},
			direct:   retryClient.HTTPClient.Transport,
		},
	}
}

type idempotentTransport struct {
	retrying http.RoundTripper
	direct   http.RoundTripper
}

func (t *idempotentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return t.retrying.RoundTrip(req)
	}
	direct := t.direct
	if direct == nil {
		direct = http.DefaultTransport
	}
	return direct.RoundTrip(req)
}
