package system

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotentOnly(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	retryClient := NewRetryClient(2)
	retryClient.RetryWaitMin = time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Millisecond
	client := IdempotentOnly(retryClient)

	resp, err := client.Post(srv.URL+"/gmail/v1/users/me/messages/send", "application/json", strings.NewReader(`{"raw":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, int32(1), hits.Load())

	hits.Store(0)
	_, err = client.Get(srv.URL + "/gmail/v1/users/me/profile")
	require.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetAPIPath(t *testing.T) {
	assert.Equal(t, "/api/v1/skills/skl_1", GetAPIPath("/skills/skl_1"))
}

func TestWrappers(t *testing.T) {
	failing := Wrapper(func(http.ResponseWriter, *http.Request) (map[string]string, *HTTPError) {
		return nil, NewHTTPError404("skill not found")
	})
	rec := httptest.NewRecorder()
	failing(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "skill not found")

	plain := DefaultWrapper(func(http.ResponseWriter, *http.Request) ([]string, error) {
		return nil, errors.New("db down")
	})
	rec = httptest.NewRecorder()
	plain(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	ok := DefaultWrapper(func(http.ResponseWriter, *http.Request) ([]string, error) {
		return []string{"a"}, nil
	})
	rec = httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["a"]`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestGenerateRequestID(t *testing.T) {
	first, second := GenerateRequestID(), GenerateRequestID()
	assert.True(t, strings.HasPrefix(first, RequestPrefix))
	assert.NotEqual(t, first, second)
}
